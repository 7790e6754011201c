// models/invoice_test.go
package models

import "testing"

func TestInvoiceItemTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []InvoiceItem
		want  float64
	}{
		{"no items", nil, 0},
		{"single item", []InvoiceItem{{SubTotal: 150000}}, 150000},
		{"multiple items", []InvoiceItem{{SubTotal: 300000}, {SubTotal: 200000}, {SubTotal: 25000}}, 525000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoice := Invoice{Items: tt.items}
			if got := invoice.ItemTotal(); got != tt.want {
				t.Errorf("ItemTotal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := User{RoleID: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("RoleAdmin user not recognised as admin")
	}
	user := User{RoleID: RoleUser}
	if user.IsAdmin() {
		t.Error("RoleUser user recognised as admin")
	}
}
