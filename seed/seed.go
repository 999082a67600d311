// Package seed holds the process-seeded order statuses and payment methods
// and the guard that keeps those rows from being created, renamed or deleted.
package seed

import (
	"github.com/minhtrifit/hubtech-interview-api/apperr"
)

type StatusSeed struct {
	Name string
	Code string
}

type MethodSeed struct {
	Name        string
	Description string
}

// Table is the immutable seeded-value lookup, built once at process start and
// passed explicitly to the services that need it.
type Table struct {
	statuses []StatusSeed
	methods  []MethodSeed
}

func NewTable(statuses []StatusSeed, methods []MethodSeed) Table {
	return Table{
		statuses: append([]StatusSeed(nil), statuses...),
		methods:  append([]MethodSeed(nil), methods...),
	}
}

func DefaultTable() Table {
	return NewTable(
		[]StatusSeed{
			{Name: "Nhận đơn", Code: "pending"},
			{Name: "Soạn hàng", Code: "preparing"},
			{Name: "Giao hàng", Code: "shipping"},
			{Name: "Hoàn thành", Code: "completed"},
		},
		[]MethodSeed{
			{Name: "COD", Description: "Thanh toán khi nhận hàng"},
			{Name: "Credit Card", Description: "Thanh toán bằng thẻ tín dụng"},
			{Name: "Bank Transfer", Description: "Thanh toán qua chuyển khoản ngân hàng"},
		},
	)
}

func (t Table) Statuses() []StatusSeed {
	return append([]StatusSeed(nil), t.statuses...)
}

func (t Table) Methods() []MethodSeed {
	return append([]MethodSeed(nil), t.methods...)
}

// IsSeededStatus reports whether (name, code) exactly matches a seeded order
// status. Comparison is case-sensitive on both fields.
func (t Table) IsSeededStatus(name, code string) bool {
	for _, s := range t.statuses {
		if s.Name == name && s.Code == code {
			return true
		}
	}
	return false
}

func (t Table) IsSeededMethod(name, description string) bool {
	for _, m := range t.methods {
		if m.Name == name && m.Description == description {
			return true
		}
	}
	return false
}

func (t Table) GuardStatusCreate(name, code string) error {
	return t.guardStatus("create", name, code)
}

// GuardStatusUpdate runs against the existing row's pair, not the incoming
// payload, so renaming a seeded row away from its seeded name is still blocked.
func (t Table) GuardStatusUpdate(name, code string) error {
	return t.guardStatus("update", name, code)
}

func (t Table) GuardStatusDelete(name, code string) error {
	return t.guardStatus("delete", name, code)
}

func (t Table) guardStatus(verb, name, code string) error {
	if t.IsSeededStatus(name, code) {
		return apperr.Newf(apperr.Conflict, `Cannot %s init order status: "%s" - "%s".`, verb, name, code)
	}
	return nil
}

func (t Table) GuardMethodCreate(name, description string) error {
	return t.guardMethod("create", name, description)
}

func (t Table) GuardMethodUpdate(name, description string) error {
	return t.guardMethod("update", name, description)
}

func (t Table) GuardMethodDelete(name, description string) error {
	return t.guardMethod("delete", name, description)
}

func (t Table) guardMethod(verb, name, description string) error {
	if t.IsSeededMethod(name, description) {
		return apperr.Newf(apperr.Conflict, `Cannot %s init payment method: "%s" - "%s".`, verb, name, description)
	}
	return nil
}
