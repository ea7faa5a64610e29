package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration time.Duration, который читается из строки вида "10s"
// и в переменных окружения, и в json-файле конфигурации, и во флагах
type Duration time.Duration

// SetValue разбор значения из переменной окружения
func (d *Duration) SetValue(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Set разбор значения из флага командной строки
func (d *Duration) Set(s string) error {
	return d.SetValue(s)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"10s\": %w", err)
	}
	return d.SetValue(s)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
