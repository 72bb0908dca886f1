package ports

import "time"

// Clock abstrai o relógio para permitir testes determinísticos
type Clock func() time.Time

// SystemClock retorna o horário atual em UTC
func SystemClock() time.Time {
	return time.Now().UTC()
}
