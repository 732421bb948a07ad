package payroll

import (
	"math"
	"testing"
)

func TestComputePayGross(t *testing.T) {
	pay := ComputePay(8, 2, 10, DefaultRates())
	if pay.GrossPay != 110.0 {
		t.Fatalf("expected gross 110, got %v", pay.GrossPay)
	}
}

func TestComputePayBelowTaxThreshold(t *testing.T) {
	pay := ComputePay(10, 0, 10, DefaultRates())
	if pay.GrossPay != 100.0 {
		t.Fatalf("expected gross 100, got %v", pay.GrossPay)
	}
	if pay.IncomeTax != 0 || pay.SocialInsurance != 0 {
		t.Fatalf("expected no deductions below thresholds, got tax=%v ni=%v", pay.IncomeTax, pay.SocialInsurance)
	}
	if pay.NetPay != 100.0 {
		t.Fatalf("expected net 100, got %v", pay.NetPay)
	}
}

func TestComputePayAboveThresholds(t *testing.T) {
	// 160 regular hours at 20/h -> 3200 gross.
	pay := ComputePay(160, 0, 20, DefaultRates())
	if pay.GrossPay != 3200.0 {
		t.Fatalf("expected gross 3200, got %v", pay.GrossPay)
	}
	wantTax := (3200.0 - 1048.0) * 0.20
	if math.Abs(pay.IncomeTax-wantTax) > 1e-9 {
		t.Fatalf("expected tax %v, got %v", wantTax, pay.IncomeTax)
	}
	wantNI := (3200.0 - 1048.0) * 0.12
	if math.Abs(pay.SocialInsurance-wantNI) > 1e-9 {
		t.Fatalf("expected NI %v, got %v", wantNI, pay.SocialInsurance)
	}
	if math.Abs(pay.NetPay-(3200.0-wantTax-wantNI)) > 1e-9 {
		t.Fatalf("unexpected net %v", pay.NetPay)
	}
}

func TestComputePayNICappedAtUpperThreshold(t *testing.T) {
	// 200 hours at 50/h -> 10000 gross, well above the NI upper band.
	pay := ComputePay(200, 0, 50, DefaultRates())
	wantNI := (4189.0 - 1048.0) * 0.12
	if math.Abs(pay.SocialInsurance-wantNI) > 1e-9 {
		t.Fatalf("expected NI capped at %v, got %v", wantNI, pay.SocialInsurance)
	}
}

func TestComputePayZeroRate(t *testing.T) {
	pay := ComputePay(8, 2, 0, DefaultRates())
	if pay.GrossPay != 0 || pay.NetPay != 0 {
		t.Fatalf("expected zero pay for zero rate, got %+v", pay)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{110.0, 110.0},
		{12.344, 12.34},
		{12.346, 12.35},
		{99.999, 100.0},
		{0.0, 0.0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Fatalf("Round2(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
