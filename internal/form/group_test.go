package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrylevesque/ordercode/internal/models"
)

func TestValidDigits(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1234", true},
		{"0000", true},
		{"", false},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{" 123", false},
		{"1234\n", false},
		{"１２３４", false}, // full-width digits
		{"٣٤٥٦", false}, // arabic-indic digits
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidDigits(tt.input))
		})
	}
}

func TestClampInput(t *testing.T) {
	assert.Equal(t, "", ClampInput(""))
	assert.Equal(t, "12", ClampInput("12"))
	assert.Equal(t, "1234", ClampInput("123456"))
	assert.Equal(t, "ab€d", ClampInput("ab€def"))
}

func TestMinuteKey(t *testing.T) {
	assert.Equal(t, "10:15", MinuteKey("10:15:32"))
	assert.Equal(t, "10:15", MinuteKey("10:15"))
	assert.Equal(t, "9:5", MinuteKey("9:5"))
	assert.Equal(t, "", MinuteKey(""))
}

func TestGroupByMinuteScenario(t *testing.T) {
	// newest first, as the form stores them after three deliveries
	records := []models.Record{
		{Time: "10:16:01", Digits: "3333"},
		{Time: "10:15:50", Digits: "2222"},
		{Time: "10:15:32", Digits: "1111"},
	}

	view := GroupByMinute(records)

	assert.Equal(t, []string{"10:16", "10:15"}, view.Minutes())
	digits, _ := view.Lookup("10:16")
	assert.Equal(t, []string{"3333"}, digits)
	digits, _ = view.Lookup("10:15")
	assert.Equal(t, []string{"2222", "1111"}, digits)
}

func TestGroupByMinuteKeepsScanOrderWithoutSorting(t *testing.T) {
	records := []models.Record{
		{Time: "09:00:00", Digits: "1"},
		{Time: "23:59:59", Digits: "2"},
		{Time: "09:00:30", Digits: "3"},
		{Time: "00:01", Digits: "4"},
	}

	view := GroupByMinute(records)

	assert.Equal(t, models.GroupedView{
		{Minute: "09:00", Digits: []string{"1", "3"}},
		{Minute: "23:59", Digits: []string{"2"}},
		{Minute: "00:01", Digits: []string{"4"}},
	}, view)
}

func TestGroupByMinuteIsDeterministic(t *testing.T) {
	records := []models.Record{
		{Time: "12:00:01", Digits: "5555"},
		{Time: "11:59:59", Digits: "4444"},
		{Time: "12:00:00", Digits: "6666"},
	}

	first := GroupByMinute(records)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, GroupByMinute(records))
	}
}

func TestGroupByMinuteEmpty(t *testing.T) {
	assert.Empty(t, GroupByMinute(nil))
}
