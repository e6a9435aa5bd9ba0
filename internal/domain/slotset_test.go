package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotSetContains_BoundaryAnchoring(t *testing.T) {
	tests := []struct {
		name string
		set  string
		slot string
		want bool
	}{
		{
			name: "exact single slot",
			set:  "06:00-07:00",
			slot: "06:00-07:00",
			want: true,
		},
		{
			name: "first element of composite set",
			set:  "06:00-07:00, 07:00-08:00",
			slot: "06:00-07:00",
			want: true,
		},
		{
			name: "middle element of composite set",
			set:  "05:00-06:00, 06:00-07:00, 07:00-08:00",
			slot: "06:00-07:00",
			want: true,
		},
		{
			name: "last element of composite set",
			set:  "05:00-06:00, 06:00-07:00",
			slot: "06:00-07:00",
			want: true,
		},
		{
			name: "suffix of a longer slot must not match",
			set:  "16:00-07:00",
			slot: "06:00-07:00",
			want: false,
		},
		{
			name: "suffix inside composite set must not match",
			set:  "05:00-06:00, 16:00-07:00",
			slot: "06:00-07:00",
			want: false,
		},
		{
			name: "prefix of a longer element must not match",
			set:  "06:00-07:00x",
			slot: "06:00-07:00",
			want: false,
		},
		{
			name: "absent slot",
			set:  "07:00-08:00, 08:00-09:00",
			slot: "06:00-07:00",
			want: false,
		},
		{
			name: "no spaces after delimiter",
			set:  "05:00-06:00,06:00-07:00",
			slot: "06:00-07:00",
			want: true,
		},
		{
			name: "extra spaces around elements",
			set:  " 06:00-07:00 ,  07:00-08:00 ",
			slot: "06:00-07:00",
			want: true,
		},
		{
			name: "empty set",
			set:  "",
			slot: "06:00-07:00",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SlotSetContains(tt.set, tt.slot))
		})
	}
}

func TestSplitSlotSet(t *testing.T) {
	tests := []struct {
		name string
		set  string
		want []string
	}{
		{
			name: "single slot",
			set:  "06:00-07:00",
			want: []string{"06:00-07:00"},
		},
		{
			name: "composite with spaces",
			set:  "06:00-07:00, 07:00-08:00",
			want: []string{"06:00-07:00", "07:00-08:00"},
		},
		{
			name: "composite without spaces",
			set:  "06:00-07:00,07:00-08:00",
			want: []string{"06:00-07:00", "07:00-08:00"},
		},
		{
			name: "dangling delimiters and empties are dropped",
			set:  ",06:00-07:00,, 07:00-08:00,",
			want: []string{"06:00-07:00", "07:00-08:00"},
		},
		{
			name: "empty string",
			set:  "",
			want: []string{},
		},
		{
			name: "only delimiters",
			set:  ", ,,",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSlotSet(tt.set))
		})
	}
}

func TestJoinSlotSet_RoundTrip(t *testing.T) {
	slots := []string{"06:00-07:00", "07:00-08:00", "08:00-09:00"}

	joined := JoinSlotSet(slots)
	assert.Equal(t, slots, SplitSlotSet(joined))

	for _, slot := range slots {
		assert.True(t, SlotSetContains(joined, slot))
	}
}

func TestValidateSlotID(t *testing.T) {
	valid := []string{"00:00-23:59", "06:00-07:00", "16:00-07:00", "23:00-23:59"}
	for _, slot := range valid {
		assert.True(t, ValidateSlotID(slot), "expected %q to be valid", slot)
	}

	invalid := []string{
		"",
		"06:00",
		"6:00-7:00",
		"24:00-25:00",
		"06:60-07:00",
		"06:00-07:00, 07:00-08:00",
		"06:00-07:00x",
		"abc",
	}
	for _, slot := range invalid {
		assert.False(t, ValidateSlotID(slot), "expected %q to be invalid", slot)
	}
}

func TestHasDuplicateSlots(t *testing.T) {
	assert.False(t, HasDuplicateSlots([]string{"06:00-07:00", "07:00-08:00"}))
	assert.True(t, HasDuplicateSlots([]string{"06:00-07:00", "06:00-07:00"}))
	assert.False(t, HasDuplicateSlots(nil))
}
