package service

import "testing"

func TestSplitTax(t *testing.T) {
	tests := []struct {
		total, subtotal, tax string
	}{
		{"118.00", "100.00", "18.00"},
		{"10.00", "8.47", "1.53"},
		{"25.50", "21.61", "3.89"},
		{"0.01", "0.01", "0.00"},
		{"0.00", "0.00", "0.00"},
		{"1234.56", "1046.24", "188.32"},
	}

	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			total := dec(tt.total)
			subtotal, tax := SplitTax(total)
			if !subtotal.Equal(dec(tt.subtotal)) {
				t.Errorf("subtotal = %s, want %s", subtotal, tt.subtotal)
			}
			if !tax.Equal(dec(tt.tax)) {
				t.Errorf("tax = %s, want %s", tax, tt.tax)
			}
			if !subtotal.Add(tax).Equal(total) {
				t.Errorf("subtotal + tax = %s, want %s", subtotal.Add(tax), total)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		paid, due string
		want      bool
	}{
		{"10.00", "10.00", true},
		{"9.99", "10.00", true},
		{"10.01", "10.00", true},
		{"9.98", "10.00", false},
		{"10.02", "10.00", false},
		{"0.00", "0.01", true},
	}

	for _, tt := range tests {
		if got := WithinTolerance(dec(tt.paid), dec(tt.due)); got != tt.want {
			t.Errorf("WithinTolerance(%s, %s) = %v, want %v", tt.paid, tt.due, got, tt.want)
		}
	}
}
