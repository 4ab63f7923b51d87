package services

import (
	"reflect"
	"testing"

	"maps-scraper/models"
	"maps-scraper/utils"
)

func names(bs []*models.Business) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Name)
	}
	return out
}

func TestDedupeNearDuplicateNames(t *testing.T) {
	d := NewDeduplicator(utils.NewNopLogger())
	in := []*models.Business{
		{Name: "City Car Rentals", Phone: "0300 1234567"},
		{Name: "City Car Rental", Phone: "0333 9999999"},
		{Name: "AutoDrive Rentals", Phone: "0321 7654321"},
		{Name: "  autodrive   rentals ", Phone: ""},
		{Name: "Lahore Cabs", Phone: "0300-1234567"},
	}
	got := names(d.Dedupe(in))
	want := []string{"City Car Rentals", "AutoDrive Rentals"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedupe = %q; want %q", got, want)
	}
}

func TestDedupeKeepsDistinct(t *testing.T) {
	d := NewDeduplicator(utils.NewNopLogger())
	in := []*models.Business{
		{Name: "City Car Rentals"},
		{Name: "Gulberg Tours"},
		{Name: "Rent A Ride"},
	}
	if got := d.Dedupe(in); len(got) != 3 {
		t.Errorf("expected all 3 distinct businesses kept, got %q", names(got))
	}
}

func TestDedupeIdempotent(t *testing.T) {
	d := NewDeduplicator(utils.NewNopLogger())
	in := []*models.Business{
		{Name: "City Car Rentals", Phone: "0300 1234567"},
		{Name: "City Car Rental"},
		{Name: "Gulberg Tours", Phone: "042 1234567"},
		{Name: "Gulberg Tour"},
		{Name: "Rent A Ride", Phone: "0321 7654321"},
	}
	once := d.Dedupe(in)
	twice := d.Dedupe(once)
	if !reflect.DeepEqual(names(once), names(twice)) {
		t.Errorf("Dedupe not idempotent: %q then %q", names(once), names(twice))
	}
}
