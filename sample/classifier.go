// Package sample converts parsed CSV records into OK/NOK torque and angle samples.
package sample

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pivolan/torque_analyzer/csvreader"
	"github.com/pivolan/torque_analyzer/domain/models"
)

const (
	// TorqueFloor and AngleFloor are the lowest admissible measurement values.
	TorqueFloor = 0.0
	AngleFloor  = -250.0

	StatusOK = "OK"
)

var ErrUnknownColumn = errors.New("unknown column")

// Records is a header-keyed record stream, e.g. *csvreader.RecordReader.
type Records interface {
	Headers() []string
	Next() (models.RawRecord, error)
}

// Buckets holds the classified samples in input row order.
type Buckets struct {
	OKTorque  []float64
	NOKTorque []float64
	OKAngle   []float64
	NOKAngle  []float64
}

// AllTorque returns OK torque values followed by NOK torque values.
func (b Buckets) AllTorque() []float64 {
	return concat(b.OKTorque, b.NOKTorque)
}

// AllAngle returns OK angle values followed by NOK angle values.
func (b Buckets) AllAngle() []float64 {
	return concat(b.OKAngle, b.NOKAngle)
}

func concat(ok, nok []float64) []float64 {
	all := make([]float64, 0, len(ok)+len(nok))
	all = append(all, ok...)
	return append(all, nok...)
}

type measurement struct {
	statusColumn string
	valueColumn  string
	floor        float64
}

// admit reads one measurement from rec. The value is rejected when it does
// not parse or lies below the floor. Without a status column every admitted
// value counts as OK; a configured but blank status counts as NOK.
func (m measurement) admit(rec models.RawRecord) (value float64, isOK bool, admitted bool) {
	value, admitted = ParseDecimal(rec[m.valueColumn])
	if !admitted || value < m.floor {
		return 0, false, false
	}
	if m.statusColumn == "" {
		return value, true, true
	}
	status := strings.ToUpper(strings.TrimSpace(rec[m.statusColumn]))
	return value, status == StatusOK, true
}

func resolve(headers []string, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", nil
	}
	col, ok := csvreader.ResolveColumn(headers, name)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownColumn, name)
	}
	return col, nil
}

// Classify drains records and splits torque and angle values into OK and
// NOK buckets according to mapping. Invalid cells are dropped silently; a
// read error from records aborts classification.
func Classify(records Records, mapping models.ColumnMapping) (Buckets, error) {
	headers := records.Headers()
	cols := make([]string, 4)
	for i, name := range []string{mapping.TorqueStatus, mapping.TorqueValue, mapping.AngleStatus, mapping.AngleValue} {
		col, err := resolve(headers, name)
		if err != nil {
			return Buckets{}, err
		}
		cols[i] = col
	}
	torque := measurement{statusColumn: cols[0], valueColumn: cols[1], floor: TorqueFloor}
	angle := measurement{statusColumn: cols[2], valueColumn: cols[3], floor: AngleFloor}

	var b Buckets
	for {
		rec, err := records.Next()
		if err == io.EOF {
			return b, nil
		}
		if err != nil {
			return Buckets{}, err
		}
		if v, ok, admitted := torque.admit(rec); admitted {
			if ok {
				b.OKTorque = append(b.OKTorque, v)
			} else {
				b.NOKTorque = append(b.NOKTorque, v)
			}
		}
		if v, ok, admitted := angle.admit(rec); admitted {
			if ok {
				b.OKAngle = append(b.OKAngle, v)
			} else {
				b.NOKAngle = append(b.NOKAngle, v)
			}
		}
	}
}
