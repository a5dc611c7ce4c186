package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFraction(t *testing.T) {
	tests := []struct {
		input   string
		want    Fraction
		wantErr bool
	}{
		{"", Fraction{}, false},
		{"0", Fraction{}, false},
		{"25/10000", NewFraction(25, 10_000), false},
		{" 1 / 3 ", NewFraction(1, 3), false},
		{"0/0", Fraction{}, false},
		{"3", Fraction{}, true},
		{"1/2/3", Fraction{}, true},
		{"a/b", Fraction{}, true},
		{"-1/2", Fraction{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFraction(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFee)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFractionValidate(t *testing.T) {
	require.NoError(t, Fraction{}.Validate())
	require.NoError(t, NewFraction(0, 100).Validate())
	require.NoError(t, NewFraction(99, 100).Validate())
	require.NoError(t, NewFraction(1, 1).Validate())
	require.NoError(t, NewFraction(100, 100).Validate())
	require.ErrorIs(t, NewFraction(101, 100).Validate(), ErrInvalidFee)
	require.ErrorIs(t, NewFraction(1, 0).Validate(), ErrInvalidFee)

	require.Equal(t, "25/10000", NewFraction(25, 10_000).String())
	require.Equal(t, "0.002500000000000000", NewFraction(25, 10_000).Dec().String())
	require.True(t, NewFraction(0, 5).Dec().IsZero())
}

func TestCalculateFee(t *testing.T) {
	tests := []struct {
		name     string
		amount   uint64
		fraction Fraction
		want     uint64
	}{
		{"floor", 1000, NewFraction(25, 10_000), 2},
		{"minimum of one", 100, NewFraction(1, 1000), 1},
		{"zero amount", 0, NewFraction(1, 2), 0},
		{"zero rate", 1000, NewFraction(0, 100), 0},
		{"empty fraction", 1000, Fraction{}, 0},
		{"half", 1001, NewFraction(1, 2), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := CalculateFee(NewUint(tt.amount), tt.fraction)
			require.NoError(t, err)
			requireUint(t, tt.want, fee)
		})
	}
}

func TestFeesValidate(t *testing.T) {
	valid := Fees{
		TradeFee:         NewFraction(25, 10_000),
		OwnerTradeFee:    NewFraction(5, 10_000),
		OwnerWithdrawFee: NewFraction(1, 1_000),
		HostFee:          NewFraction(20, 100),
	}

	tests := []struct {
		name    string
		mutate  func(*Fees)
		wantErr string
	}{
		{"default schedule", func(*Fees) {}, ""},
		{"host takes the whole owner fee", func(f *Fees) { f.HostFee = NewFraction(1, 1) }, ""},
		{"withdraw fee of one", func(f *Fees) { f.OwnerWithdrawFee = NewFraction(1, 1) }, ""},
		{"host fee above one", func(f *Fees) { f.HostFee = NewFraction(101, 100) }, "host fee"},
		{"zero denominator", func(f *Fees) { f.OwnerWithdrawFee = NewFraction(1, 0) }, "owner withdraw fee"},
		{"trade fee of one", func(f *Fees) { f.TradeFee = NewFraction(1, 1) }, "whole input"},
		{"owner trade fee of one", func(f *Fees) {
			f.TradeFee = Fraction{}
			f.OwnerTradeFee = NewFraction(3, 3)
		}, "whole input"},
		{"trade fees summing to one", func(f *Fees) {
			f.TradeFee = NewFraction(1, 2)
			f.OwnerTradeFee = NewFraction(2, 4)
		}, "whole input"},
		{"trade fees just below one", func(f *Fees) {
			f.TradeFee = NewFraction(1, 2)
			f.OwnerTradeFee = NewFraction(1, 3)
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fees := valid
			tt.mutate(&fees)

			err := fees.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidFee)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFeesAccessors(t *testing.T) {
	fees := Fees{
		TradeFee:         NewFraction(25, 10_000),
		OwnerTradeFee:    NewFraction(5, 10_000),
		OwnerWithdrawFee: NewFraction(1, 1_000),
		HostFee:          NewFraction(20, 100),
	}

	tradeFee, err := fees.TradingFee(NewUint(100_000))
	require.NoError(t, err)
	requireUint(t, 250, tradeFee)

	ownerFee, err := fees.OwnerTradingFee(NewUint(100_000))
	require.NoError(t, err)
	requireUint(t, 50, ownerFee)

	withdrawFee, err := fees.OwnerWithdrawFeeAmount(NewUint(100_000))
	require.NoError(t, err)
	requireUint(t, 100, withdrawFee)

	hostFee, err := fees.HostFeeAmount(ownerFee)
	require.NoError(t, err)
	requireUint(t, 10, hostFee)
	require.True(t, hostFee.LTE(ownerFee))
}

func TestPreTradingFeeAmount(t *testing.T) {
	tests := []struct {
		name string
		fees Fees
		post uint64
		want uint64
	}{
		{"no fees", Fees{}, 1000, 1000},
		{"trade fee only", Fees{TradeFee: NewFraction(25, 10_000)}, 9975, 10_000},
		{"owner fee only", Fees{OwnerTradeFee: NewFraction(5, 10_000)}, 9995, 10_000},
		{"combined", Fees{TradeFee: NewFraction(25, 10_000), OwnerTradeFee: NewFraction(5, 10_000)}, 9970, 10_000},
		{"rounds up", Fees{TradeFee: NewFraction(1, 3)}, 11, 17},
		{"zero post amount", Fees{TradeFee: NewFraction(1, 3)}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gross, err := tt.fees.PreTradingFeeAmount(NewUint(tt.post))
			require.NoError(t, err)
			requireUint(t, tt.want, gross)
		})
	}
}

// TestPreTradingFeeAmountCoversFees checks that the gross amount always
// nets at least the requested amount after both fees.
func TestPreTradingFeeAmountCoversFees(t *testing.T) {
	fees := Fees{TradeFee: NewFraction(25, 10_000), OwnerTradeFee: NewFraction(5, 10_000)}

	for post := uint64(1); post < 5000; post += 7 {
		gross, err := fees.PreTradingFeeAmount(NewUint(post))
		require.NoError(t, err)

		tradeFee, err := fees.TradingFee(gross)
		require.NoError(t, err)
		ownerFee, err := fees.OwnerTradingFee(gross)
		require.NoError(t, err)

		totalFees, err := tradeFee.Add(ownerFee)
		require.NoError(t, err)
		net, err := gross.Sub(totalFees)
		require.NoError(t, err)

		// the one-unit minimum fee can cost at most two units per fee on tiny amounts
		netPlusSlack, err := net.Add(NewUint(2))
		require.NoError(t, err)
		require.Truef(t, netPlusSlack.GTE(NewUint(post)), "post %d gross %s net %s", post, gross, net)
	}
}
