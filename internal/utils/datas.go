package utils

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// FormatoData é o formato de data usado na API (DD/MM/AAAA).
const FormatoData = "02/01/2006"

const formatoISO = "2006-01-02"

// Data é um campo de data sem hora. No JSON é renderizada como DD/MM/AAAA e
// aceita também o formato ISO (AAAA-MM-DD) na entrada. No banco vira DATE.
type Data struct {
	time.Time
}

func NovaData(ano int, mes time.Month, dia int) Data {
	return Data{time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)}
}

func (d Data) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(FormatoData) + `"`), nil
}

func (d *Data) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{FormatoData, formatoISO} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("data %q inválida: use DD/MM/AAAA ou AAAA-MM-DD", s)
}

func (d Data) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Data) Scan(v interface{}) error {
	switch t := v.(type) {
	case nil:
		d.Time = time.Time{}
	case time.Time:
		d.Time = t
	case string:
		parsed, err := time.Parse(formatoISO, t[:min(len(t), 10)])
		if err != nil {
			return err
		}
		d.Time = parsed
	default:
		return fmt.Errorf("tipo %T não suportado para Data", v)
	}
	return nil
}

func (Data) GormDataType() string { return "date" }
