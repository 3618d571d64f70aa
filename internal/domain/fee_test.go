package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		roundUp bool
		want    int64
	}{
		{"floor drops fraction of a cent", "1.349", false, 134},
		{"ceil lifts fraction of a cent", "1.349", true, 135},
		{"ceil keeps whole cents", "1.30", true, 130},
		{"floor keeps whole cents", "2", false, 200},
		{"floor of negative moves away from zero", "-1.341", false, -135},
		{"tiny amount floors to zero", "0.009", false, 0},
		{"tiny amount ceils to a cent", "0.001", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(decimal.RequireFromString(tt.amount), tt.roundUp)
			assert.Equal(t, tt.want, got.Cents())
		})
	}
}

func TestFeeSchedule_PlatformFee(t *testing.T) {
	s := DefaultFeeSchedule()

	tests := []struct {
		amount string
		want   string
	}{
		{"100.00", "1.00"},
		{"1.00", "0.01"},
		{"0.99", "0.00"},
		{"1.50", "0.01"},
		{"999999.99", "9999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, s.PlatformFee(MustParseMoney(tt.amount)).String())
		})
	}
}

func TestFeeSchedule_AmountPlusPlatformFee(t *testing.T) {
	s := DefaultFeeSchedule()

	assert.Equal(t, "1.01", s.AmountPlusPlatformFee(MustParseMoney("1.00")).String())
	assert.Equal(t, "101.00", s.AmountPlusPlatformFee(MustParseMoney("100")).String())
	assert.Equal(t, "0.50", s.AmountPlusPlatformFee(MustParseMoney("0.50")).String())
}

func TestFeeSchedule_ProcessingFee(t *testing.T) {
	s := DefaultFeeSchedule()

	tests := []struct {
		amount string
		want   string
	}{
		{"100.00", "3.20"},
		{"1.34", "0.33"},
		{"0", "0.30"},
		{"1040.47", "30.47"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ProcessingFee(MustParseMoney(tt.amount)).String())
		})
	}
}

func TestFeeSchedule_AmountMinusProcessingFee(t *testing.T) {
	s := DefaultFeeSchedule()

	assert.Equal(t, "96.80", s.AmountMinusProcessingFee(MustParseMoney("100.00")).String())
	assert.Equal(t, "1.01", s.AmountMinusProcessingFee(MustParseMoney("1.34")).String())
}

func TestFeeSchedule_AmountPlusProcessingFee(t *testing.T) {
	s := DefaultFeeSchedule()

	tests := []struct {
		amount string
		want   string
	}{
		{"1.01", "1.34"},
		{"100.00", "103.29"},
		{"0", "0.30"},
		{"1010.00", "1040.47"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, s.AmountPlusProcessingFee(MustParseMoney(tt.amount)).String())
		})
	}
}

func TestFeeSchedule_ProcessingFeeRoundTrip(t *testing.T) {
	s := DefaultFeeSchedule()

	for cents := int64(0); cents <= 20_000; cents++ {
		x := Cents(cents)
		back := s.AmountMinusProcessingFee(s.AmountPlusProcessingFee(x))
		require.Equal(t, x, back, "minus(plus(%s))", x)
	}

	for cents := int64(31); cents <= 20_000; cents++ {
		y := Cents(cents)
		back := s.AmountPlusProcessingFee(s.AmountMinusProcessingFee(y))
		diff := back.Sub(y).Cents()
		require.True(t, diff >= 0 && diff <= 1, "plus(minus(%s)) = %s", y, back)
	}
}

func TestFeeSchedule_PledgerBounds(t *testing.T) {
	s := DefaultFeeSchedule()

	tests := []struct {
		goal    string
		wantMin int64
		wantMax int64
	}{
		{"1000", 1, 2000},
		{"1", 1, 2},
		{"999999.99", 1, 1_999_999},
		{"1000000", 2, 2_000_000},
		{"1000000000", 1001, 2_000_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.goal, func(t *testing.T) {
			minimum, maximum, err := s.PledgerBounds(MustParseMoney(tt.goal))
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, minimum)
			assert.Equal(t, tt.wantMax, maximum)
		})
	}
}

func TestFeeSchedule_PledgerBoundsLargestMoney(t *testing.T) {
	s := DefaultFeeSchedule()

	minimum, maximum, err := s.PledgerBounds(Cents(math.MaxInt64))
	require.NoError(t, err)
	assert.Equal(t, int64(92_233_721_291), minimum)
	assert.Equal(t, int64(184_467_440_737_095_516), maximum)
}

func TestFeeSchedule_PledgerBoundsOrdered(t *testing.T) {
	s := DefaultFeeSchedule()

	goals := []int64{100, 101, 149, 150, 9_999, 99_999_999, 100_000_000, 100_000_001, 100_000_000_000}
	for cents := int64(100); cents < 100_000_000_000; cents = cents*7 + 13 {
		goals = append(goals, cents)
	}

	for _, cents := range goals {
		minimum, maximum, err := s.PledgerBounds(Cents(cents))
		require.NoError(t, err)
		require.LessOrEqual(t, minimum, maximum, "goal %s", Cents(cents))
	}
}

func TestFeeSchedule_PledgerBoundsRejectNonPositiveGoal(t *testing.T) {
	s := DefaultFeeSchedule()

	_, err := s.MinimumPossiblePledgers(Cents(0))
	assert.ErrorIs(t, err, ErrInvalidFundingGoal)

	_, err = s.MaximumPossiblePledgers(Cents(-100))
	assert.ErrorIs(t, err, ErrInvalidFundingGoal)
}

func TestFeeSchedule_GrossPledge(t *testing.T) {
	s := DefaultFeeSchedule()

	gross, err := s.GrossPledge(MustParseMoney("1000"), 1000)
	require.NoError(t, err)
	assert.Equal(t, "1.00", gross.String())

	gross, err = s.GrossPledge(MustParseMoney("1000"), 3)
	require.NoError(t, err)
	assert.Equal(t, "333.33", gross.String())

	gross, err = s.GrossPledge(MustParseMoney("1"), 3)
	require.NoError(t, err)
	assert.Equal(t, "0.33", gross.String())
}

func TestFeeSchedule_GrossPledgeNeverOvershootsGoal(t *testing.T) {
	s := DefaultFeeSchedule()

	goals := []string{"1", "7.77", "1000", "12345.67", "1000000000"}
	for _, g := range goals {
		goal := MustParseMoney(g)
		_, maxPossible, err := s.PledgerBounds(goal)
		require.NoError(t, err)

		for n := int64(1); n <= 500 && n <= maxPossible; n++ {
			gross, err := s.GrossPledge(goal, n)
			require.NoError(t, err)

			collected := gross.Mul(n)
			require.False(t, collected.GreaterThan(goal), "goal %s n %d", goal, n)
			require.Less(t, goal.Sub(collected).Cents(), n, "goal %s n %d", goal, n)
		}
	}
}

func TestFeeSchedule_PreconditionViolations(t *testing.T) {
	s := DefaultFeeSchedule()
	goal := MustParseMoney("1000")

	_, err := s.GrossPledge(goal, 0)
	assert.ErrorIs(t, err, ErrInvalidPledgerCount)

	_, err = s.GrossPledge(goal, -5)
	assert.ErrorIs(t, err, ErrInvalidPledgerCount)

	_, err = s.GrossPledge(Cents(0), 10)
	assert.ErrorIs(t, err, ErrInvalidFundingGoal)

	_, err = s.PledgeChargePlusFees(goal, 0)
	assert.ErrorIs(t, err, ErrInvalidPledgerCount)

	_, err = s.NetProceeds(Cents(-1), 1)
	assert.ErrorIs(t, err, ErrInvalidFundingGoal)

	_, err = s.Breakdown(goal, 0)
	assert.ErrorIs(t, err, ErrInvalidPledgerCount)
}

func TestFeeSchedule_FeeCompositionOrder(t *testing.T) {
	s := DefaultFeeSchedule()

	tests := []struct {
		gross          string
		platformFirst  string
		processingFirst string
	}{
		{"250.00", "260.35", "260.34"},
		{"125.00", "130.32", "130.33"},
	}

	for _, tt := range tests {
		t.Run(tt.gross, func(t *testing.T) {
			gross := MustParseMoney(tt.gross)

			charge, err := s.PledgeChargePlusFees(gross.Mul(4), 4)
			require.NoError(t, err)
			assert.Equal(t, tt.platformFirst, charge.String())

			reversed := s.AmountPlusPlatformFee(s.AmountPlusProcessingFee(gross))
			assert.Equal(t, tt.processingFirst, reversed.String())
			assert.NotEqual(t, charge, reversed)
		})
	}
}

func TestFeeSchedule_PledgeChargePlusFees(t *testing.T) {
	s := DefaultFeeSchedule()

	tests := []struct {
		name     string
		goal     string
		pledgers int64
		want     string
	}{
		{"one dollar each", "1000", 1000, "1.34"},
		{"single pledger", "1000", 1, "1040.47"},
		{"minimum share", "1000", 2000, "0.82"},
		{"ten dollars each", "1000", 100, "10.71"},
		{"platform fee before processing fee", "1000", 4, "260.35"},
		{"platform fee before processing fee, rounding the other way", "1000", 8, "130.32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.PledgeChargePlusFees(MustParseMoney(tt.goal), tt.pledgers)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFeeSchedule_NetProceeds(t *testing.T) {
	s := DefaultFeeSchedule()

	net, err := s.NetProceeds(MustParseMoney("1000"), 1000)
	require.NoError(t, err)
	assert.Equal(t, "990.00", net.String())

	net, err = s.NetProceeds(MustParseMoney("1000"), 2000)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", net.String())
}

func TestFeeSchedule_Breakdown(t *testing.T) {
	s := DefaultFeeSchedule()

	b, err := s.Breakdown(MustParseMoney("1000"), 1000)
	require.NoError(t, err)

	assert.Equal(t, "1.00", b.GrossPledge.String())
	assert.Equal(t, "0.01", b.PlatformFee.String())
	assert.Equal(t, "1.01", b.PlatformInclusive.String())
	assert.Equal(t, "1.34", b.Charge.String())
	assert.Equal(t, "0.33", b.ProcessingFee.String())
	assert.Equal(t, "0.99", b.NetPledge.String())
	assert.Equal(t, b.PlatformInclusive, b.Charge.Sub(b.ProcessingFee))
}

func TestFeeSchedule_RoundUp(t *testing.T) {
	s := DefaultFeeSchedule()
	s.RoundUp = true

	charge, err := s.PledgeChargePlusFees(MustParseMoney("1000"), 1000)
	require.NoError(t, err)
	assert.Equal(t, "1.35", charge.String())

	gross, err := s.GrossPledge(MustParseMoney("1000"), 3)
	require.NoError(t, err)
	assert.Equal(t, "333.34", gross.String())

	assert.Equal(t, "0.02", s.PlatformFee(MustParseMoney("1.50")).String())
}

func TestIsSuccessful(t *testing.T) {
	assert.True(t, IsSuccessful(10, 10))
	assert.True(t, IsSuccessful(11, 10))
	assert.False(t, IsSuccessful(9, 10))
}

func TestFeeSchedule_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *FeeSchedule)
		valid  bool
	}{
		{"default", func(s *FeeSchedule) {}, true},
		{"zero fees", func(s *FeeSchedule) {
			s.PlatformFeeRate = decimal.Zero
			s.ProcessingFeeRate = decimal.Zero
			s.ProcessingFeeFixed = decimal.Zero
		}, true},
		{"processing rate of one", func(s *FeeSchedule) { s.ProcessingFeeRate = decimal.NewFromInt(1) }, false},
		{"negative platform rate", func(s *FeeSchedule) { s.PlatformFeeRate = decimal.RequireFromString("-0.01") }, false},
		{"negative fixed fee", func(s *FeeSchedule) { s.ProcessingFeeFixed = decimal.RequireFromString("-0.30") }, false},
		{"zero minimum pledge", func(s *FeeSchedule) { s.MinimumPledge = Cents(0) }, false},
		{"maximum below minimum pledge", func(s *FeeSchedule) { s.MaximumPledge = Cents(10) }, false},
		{"zero minimum goal", func(s *FeeSchedule) { s.MinimumFundingGoal = Cents(0) }, false},
		{"maximum below minimum goal", func(s *FeeSchedule) { s.MaximumFundingGoal = Cents(50) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultFeeSchedule()
			tt.mutate(&s)

			err := s.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidFeeSchedule)
			}
		})
	}
}
