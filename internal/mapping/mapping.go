// Package mapping infers which columns of a point-of-sale export play which
// semantic role (date, price, item name, ...) from vendor-specific column
// names, and classifies a dataset as transaction-level or summary-level.
package mapping

import (
	"fmt"
	"strings"
)

// Field is a canonical semantic role that analysis logic is written against,
// independent of the actual column names in a given export.
type Field string

const (
	FieldDate          Field = "date"
	FieldItemName      Field = "item_name"
	FieldPrice         Field = "price"
	FieldQuantity      Field = "quantity"
	FieldCategory      Field = "category"
	FieldPaymentMethod Field = "payment_method"
	FieldEmployee      Field = "employee"
	FieldOrderID       Field = "order_id"
	FieldCustomerID    Field = "customer_id"
	FieldTax           Field = "tax"
	FieldDiscount      Field = "discount"
	FieldTip           Field = "tip"
	FieldCost          Field = "cost"
)

// Fields returns all canonical fields in detection priority order. The order
// is part of the contract: it decides which field a column is checked for
// first, and changing it changes report contents.
func Fields() []Field {
	return []Field{
		FieldDate,
		FieldItemName,
		FieldPrice,
		FieldQuantity,
		FieldCategory,
		FieldPaymentMethod,
		FieldEmployee,
		FieldOrderID,
		FieldCustomerID,
		FieldTax,
		FieldDiscount,
		FieldTip,
		FieldCost,
	}
}

// detectionKeywords drives inference. A column matches a field when its
// lowercased, trimmed name contains any keyword as a substring. The lists
// mirror common Toast/Square/Clover export vocabularies; keep them and their
// order stable, since the first match wins.
var detectionKeywords = map[Field][]string{
	FieldDate:          {"date", "time", "created", "order_date", "timestamp", "datetime", "closed"},
	FieldItemName:      {"item", "product", "menu", "name", "description", "dish", "food"},
	FieldPrice:         {"price", "amount", "total", "cost", "revenue", "value", "sales", "gross"},
	FieldQuantity:      {"qty", "quantity", "count", "units", "sold", "ordered"},
	FieldCategory:      {"category", "type", "group", "section", "class", "department"},
	FieldPaymentMethod: {"payment", "method", "card", "cash", "tender"},
	FieldEmployee:      {"employee", "staff", "server", "cashier", "user", "waiter"},
	FieldOrderID:       {"order", "ticket", "transaction", "id", "receipt", "check"},
	FieldCustomerID:    {"customer", "guest", "phone", "email", "client"},
	FieldTax:           {"tax", "gst", "vat", "sales_tax"},
	FieldDiscount:      {"discount", "promo", "coupon", "comp"},
	FieldTip:           {"tip", "gratuity", "service"},
	FieldCost:          {"cost", "cogs", "ingredient_cost"},
}

// Mapping associates canonical fields with actual column names. Absent keys
// are unmapped fields; downstream analyses treat those as "insufficient data
// for this analysis", never as errors.
type Mapping map[Field]string

// Infer scans column names left to right for each field in priority order and
// assigns the first column whose lowercased name contains any of the field's
// keywords. A column already assigned to one field stays eligible for others:
// "total_tax_amount" can map to both price and tax. Fields with no match stay
// unmapped. Infer never fails.
func Infer(columns []string) Mapping {
	lowered := make([]string, len(columns))
	for i, c := range columns {
		lowered[i] = strings.ToLower(strings.TrimSpace(c))
	}
	m := Mapping{}
	for _, field := range Fields() {
		keywords := detectionKeywords[field]
		for i, col := range lowered {
			if containsAny(col, keywords) {
				m[field] = columns[i]
				break
			}
		}
	}
	return m
}

// Manual builds a mapping from explicit field->column assignments, bypassing
// keyword inference entirely. Assignments are not checked against the dataset
// here; use Validate to report nonexistent columns.
func Manual(assign map[Field]string) Mapping {
	m := make(Mapping, len(assign))
	for f, col := range assign {
		if col != "" {
			m[f] = col
		}
	}
	return m
}

// ParseField converts a user-supplied field name into a canonical Field.
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Fields() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q (known: %s)", name, fieldList())
}

func fieldList() string {
	names := make([]string, 0, len(Fields()))
	for _, f := range Fields() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// Column returns the column mapped to a field, if any.
func (m Mapping) Column(f Field) (string, bool) {
	col, ok := m[f]
	return col, ok
}

// Validate reports, for each mapped field, whether its column exists in the
// given column set. Unmapped fields are omitted.
func (m Mapping) Validate(columns []string) map[Field]bool {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	out := make(map[Field]bool, len(m))
	for f, col := range m {
		_, exists := set[col]
		out[f] = exists
	}
	return out
}

// Names renders the mapping with plain string keys for serialization.
func (m Mapping) Names() map[string]string {
	out := make(map[string]string, len(m))
	for f, col := range m {
		out[string(f)] = col
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
