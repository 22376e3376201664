package piecewise

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libphysics/dec"
	"github.com/sgostarter/libphysics/units"
)

// numberPattern gates the abscissa column of a data line: optional leading
// minus, integer or decimal number, optional signed exponent.
var numberPattern = regexp.MustCompile(`^-?\d+(\.\d+(e[+-]\d+)?)?$`)

// LoadOptions describes the shape of a delimited sample file, so the same
// parser serves differently laid out source files.
type LoadOptions struct {
	// AbscissaMultiplier and ValueMultiplier convert the file's columns into
	// base SI units. nil means unity.
	AbscissaMultiplier *apd.Decimal
	ValueMultiplier    *apd.Decimal

	Extension string // required file extension, without the dot
	Separator string // column separator string

	Columns        int // exact number of columns a valid line splits into
	AbscissaColumn int
	ValueColumn    int
}

// Load builds a Function from a delimited text file, one sample per line.
// Lines that do not split into exactly the expected column count, or whose
// abscissa column is not a numeric literal, are skipped silently. A repeated
// abscissa keeps its first value.
func Load(path string, opts LoadOptions) (*Function, error) {
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != opts.Extension {
		return nil, fmt.Errorf("%w: expected a .%s file, got %q", ErrBadFormat, opts.Extension, path)
	}

	if opts.AbscissaColumn < 0 || opts.AbscissaColumn >= opts.Columns ||
		opts.ValueColumn < 0 || opts.ValueColumn >= opts.Columns {
		return nil, fmt.Errorf("%w: column to extract out of bounds", commerr.ErrInvalidArgument)
	}

	abscissaMultiplier := opts.AbscissaMultiplier
	if abscissaMultiplier == nil {
		abscissaMultiplier = dec.One()
	}

	valueMultiplier := opts.ValueMultiplier
	if valueMultiplier == nil {
		valueMultiplier = dec.One()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	fn := &Function{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Split(strings.TrimSpace(scanner.Text()), opts.Separator)
		if len(fields) != opts.Columns {
			continue
		}

		rawAbscissa := strings.TrimSpace(fields[opts.AbscissaColumn])
		if !numberPattern.MatchString(rawAbscissa) {
			continue
		}

		x, err := dec.Parse(rawAbscissa)
		if err != nil {
			continue
		}

		y, err := dec.Parse(strings.TrimSpace(fields[opts.ValueColumn]))
		if err != nil {
			continue
		}

		ed := apd.MakeErrDecimal(dec.Ctx)
		ed.Mul(x, x, abscissaMultiplier)
		ed.Mul(y, y, valueMultiplier)

		if ed.Err() != nil {
			continue
		}

		cleanX := dec.Normalize(x)

		if _, exists := fn.search(cleanX); exists {
			continue
		}

		fn.put(cleanX, dec.Normalize(y))
	}

	if err = scanner.Err(); err != nil {
		return nil, err
	}

	return fn, nil
}

// Loader turns a sample file plus the units its two columns are expressed in
// into a populated Function.
type Loader interface {
	LoadFunction(path string, abscissaUnit, valueUnit units.Prefix) (*Function, error)
}

// NewFileLoader binds the per-format load options once, so call sites only
// supply a path and the units of its columns.
func NewFileLoader(extension, separator string, columns, abscissaColumn, valueColumn int) Loader {
	return &fileLoader{
		extension:      extension,
		separator:      separator,
		columns:        columns,
		abscissaColumn: abscissaColumn,
		valueColumn:    valueColumn,
	}
}

type fileLoader struct {
	extension string
	separator string

	columns        int
	abscissaColumn int
	valueColumn    int
}

func (impl *fileLoader) LoadFunction(path string, abscissaUnit, valueUnit units.Prefix) (*Function, error) {
	return Load(path, LoadOptions{
		AbscissaMultiplier: abscissaUnit.Multiplier(),
		ValueMultiplier:    valueUnit.Multiplier(),
		Extension:          impl.extension,
		Separator:          impl.separator,
		Columns:            impl.columns,
		AbscissaColumn:     impl.abscissaColumn,
		ValueColumn:        impl.valueColumn,
	})
}
