package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SanitationBookingService/pkg/ptr"
)

func catalog() []*Service {
	return []*Service{
		{ID: 1, Country: "Ecuador", CoverageRegions: []string{"Pichincha"}, Available: true},
		{ID: 2, Country: "Ecuador", CoverageRegions: []string{"Guayas"}, Available: true},
		{ID: 3, Country: "Ecuador", Available: true},
		{ID: 4, Country: "Ecuador", Available: false},
		{ID: 5, Country: "Peru", Available: true},
	}
}

func ids(services []*Service) []int64 {
	out := make([]int64, 0, len(services))
	for _, s := range services {
		out = append(out, s.ID)
	}
	return out
}

func TestEligibleServices(t *testing.T) {
	tests := []struct {
		name   string
		client *Client
		want   []int64
	}{
		{"public browse", nil, []int64{1, 2, 3, 5}},
		{"region narrows coverage", &Client{Country: "Ecuador", Region: ptr.Ptr("Pichincha")}, []int64{1, 3}},
		{"region outside every coverage", &Client{Country: "Ecuador", Region: ptr.Ptr("Azuay")}, []int64{3}},
		{"no region", &Client{Country: "Ecuador"}, []int64{1, 2, 3}},
		{"other country", &Client{Country: "Peru", Region: ptr.Ptr("Lima")}, []int64{5}},
		{"unknown country", &Client{Country: "Chile"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(EligibleServices(catalog(), tt.client)))
		})
	}
}

func TestEligibleServices_UnsetRegionIsStable(t *testing.T) {
	want := ids(EligibleServices(catalog(), &Client{Country: "Ecuador"}))

	for _, placeholder := range []*string{nil, ptr.Ptr(""), ptr.Ptr("-"), ptr.Ptr(" ")} {
		got := ids(EligibleServices(catalog(), &Client{Country: "Ecuador", Region: placeholder}))
		assert.Equal(t, want, got)
	}
}
