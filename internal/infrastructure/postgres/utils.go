package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// sequencePattern regex POSIX para <prefijo>-<año>-<dígitos>.
func sequencePattern(prefix string, year int) string {
	return fmt.Sprintf("^%s-%d-[0-9]{1,9}$", prefix, year)
}

// whereBuilder arma cláusulas WHERE con placeholders numerados.
type whereBuilder struct {
	conds []string
	args  []any
}

func newWhere(userID string) *whereBuilder {
	w := &whereBuilder{}
	w.add("user_id = $%d", userID)
	return w
}

// add agrega una condición; cond lleva un único %d para el placeholder.
func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) addIf(ok bool, cond string, arg any) {
	if ok {
		w.add(cond, arg)
	}
}

func (w *whereBuilder) sql() string {
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega LIMIT/OFFSET como placeholders y devuelve el sufijo SQL.
func (w *whereBuilder) page(limit, offset int) string {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	w.args = append(w.args, limit, offset)
	n := len(w.args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n-1, n)
}

// expectOne convierte 0 filas afectadas en errNotFound.
func expectOne(tag pgconn.CommandTag, errNotFound error) error {
	if tag.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}
