package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect cubre lo poco que cambia entre Postgres y SQLite para estos repos.
type Dialect struct {
	Name string

	// Numbered: true => placeholders $1,$2... (Postgres). false => "?".
	Numbered bool

	// IsForeignKeyViolation reconoce el error del driver al insertar un
	// avistamiento con bear_id inexistente.
	IsForeignKeyViolation func(error) bool
}

// Rebind convierte "?" a "$n" si el dialecto lo pide.
// Las queries de este paquete no tienen "?" dentro de literales.
func (d Dialect) Rebind(q string) string {
	if !d.Numbered {
		return q
	}
	var sb strings.Builder
	sb.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (d Dialect) isFK(err error) bool {
	return err != nil && d.IsForeignKeyViolation != nil && d.IsForeignKeyViolation(err)
}
