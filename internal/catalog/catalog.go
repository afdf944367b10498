// Package catalog holds the fixed travel catalogs: hotels, cars, tours and visas.
//
// Catalogs are built once at package initialisation and never change. Every
// accessor hands out deep copies so callers cannot mutate the shared data.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gosimple/slug"
)

// Kind is the variant tag of a catalog item.
type Kind string

const (
	KindHotel Kind = "hotel"
	KindCar   Kind = "car"
	KindTour  Kind = "tour"
	KindVisa  Kind = "visa"
)

// Tab selects one of the four catalogs.
type Tab int

const (
	TabHotels Tab = iota
	TabCars
	TabTours
	TabVisa
)

var tabNames = [...]string{"hotels", "cars", "tours", "visa"}

// Tabs returns all tabs in display order.
func Tabs() []Tab {
	return []Tab{TabHotels, TabCars, TabTours, TabVisa}
}

// String returns the lowercase tab name used on the command line and in config.
func (t Tab) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tab(%d)", int(t))
	}
	return tabNames[t]
}

// Title returns the capitalised tab name ("Hotels", "Cars", ...).
func (t Tab) Title() string {
	s := t.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Valid reports whether t names one of the four catalogs.
func (t Tab) Valid() bool {
	return t >= TabHotels && t <= TabVisa
}

// Kind returns the item kind listed under the tab.
func (t Tab) Kind() Kind {
	switch t {
	case TabCars:
		return KindCar
	case TabTours:
		return KindTour
	case TabVisa:
		return KindVisa
	default:
		return KindHotel
	}
}

// ParseTab parses a tab name. Singular forms are accepted too.
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hotels", "hotel":
		return TabHotels, nil
	case "cars", "car":
		return TabCars, nil
	case "tours", "tour":
		return TabTours, nil
	case "visa", "visas":
		return TabVisa, nil
	default:
		return TabHotels, fmt.Errorf("invalid tab: %q (use hotels, cars, tours or visa)", s)
	}
}

// Details is the variant-specific part of an Item. It is implemented only by
// Hotel, Car, Tour and Visa.
type Details interface {
	kind() Kind
	clone() Details
}

// Hotel is a bookable hotel stay, priced per night.
type Hotel struct {
	Location  string
	Rating    float64
	Amenities []string
}

// Car is a rental car, priced per day. Location and Model are both optional.
type Car struct {
	Location *string
	Model    *string
	Rating   float64
	Features []string
}

// Tour is a guided tour with a duration label.
type Tour struct {
	Location string
	Rating   float64
	Duration string
}

// Visa is a visa application service for a destination country.
type Visa struct {
	Country    string
	Processing string
}

func (Hotel) kind() Kind { return KindHotel }
func (Car) kind() Kind   { return KindCar }
func (Tour) kind() Kind  { return KindTour }
func (Visa) kind() Kind  { return KindVisa }

func (h Hotel) clone() Details {
	h.Amenities = slices.Clone(h.Amenities)
	return h
}

func (c Car) clone() Details {
	c.Location = cloneOpt(c.Location)
	c.Model = cloneOpt(c.Model)
	c.Features = slices.Clone(c.Features)
	return c
}

func (t Tour) clone() Details { return t }
func (v Visa) clone() Details { return v }

func cloneOpt(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Item is one bookable catalog entry.
type Item struct {
	ID      int
	Name    string
	Price   float64
	Image   string
	Details Details
}

// Kind returns the variant tag of the item.
func (it Item) Kind() Kind {
	if it.Details == nil {
		return ""
	}
	return it.Details.kind()
}

// Same reports whether two items are the same catalog entry (id and tag).
func (it Item) Same(other Item) bool {
	return it.ID == other.ID && it.Kind() == other.Kind()
}

// Key returns a stable, human-typeable identifier such as "grand-plaza-hotel-1".
// Keys are unique across all catalogs.
func (it Item) Key() string {
	return fmt.Sprintf("%s-%d", slug.Make(it.Name), it.ID)
}

// DisplayLocation returns the location line shown under the item name:
// the country for visas, else the location when present, else the car model,
// else the empty string.
func (it Item) DisplayLocation() string {
	switch d := it.Details.(type) {
	case Visa:
		return d.Country
	case Hotel:
		return d.Location
	case Tour:
		return d.Location
	case Car:
		if d.Location != nil {
			return *d.Location
		}
		if d.Model != nil {
			return *d.Model
		}
	}
	return ""
}

// Rating returns the item rating. Visas carry no rating.
func (it Item) Rating() (float64, bool) {
	switch d := it.Details.(type) {
	case Hotel:
		return d.Rating, true
	case Car:
		return d.Rating, true
	case Tour:
		return d.Rating, true
	}
	return 0, false
}

// PriceSuffix returns the label printed under the price: the duration for
// tours, the model (or "per day") for cars, "per night" for hotels.
func (it Item) PriceSuffix() string {
	switch d := it.Details.(type) {
	case Tour:
		return d.Duration
	case Car:
		if d.Model != nil {
			return *d.Model
		}
		return "per day"
	case Hotel:
		return "per night"
	}
	return ""
}

// Tags returns hotel amenities or car features, in catalog order.
func (it Item) Tags() []string {
	switch d := it.Details.(type) {
	case Hotel:
		return slices.Clone(d.Amenities)
	case Car:
		return slices.Clone(d.Features)
	}
	return nil
}

// Processing returns the visa processing-time label.
func (it Item) Processing() string {
	if v, ok := it.Details.(Visa); ok {
		return v.Processing
	}
	return ""
}

func (it Item) clone() Item {
	if it.Details != nil {
		it.Details = it.Details.clone()
	}
	return it
}

// Items returns a copy of the catalog for the tab. Each catalog has exactly
// four items.
func Items(tab Tab) []Item {
	src := catalogs[tab.Kind()]
	out := make([]Item, len(src))
	for i, it := range src {
		out[i] = it.clone()
	}
	return out
}

// Lookup finds an item by id within a tab's catalog.
func Lookup(tab Tab, id int) (Item, bool) {
	for _, it := range catalogs[tab.Kind()] {
		if it.ID == id {
			return it.clone(), true
		}
	}
	return Item{}, false
}

// ByKey finds an item by its Key across all catalogs and reports its tab.
func ByKey(key string) (Item, Tab, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, tab := range Tabs() {
		for _, it := range catalogs[tab.Kind()] {
			if it.Key() == key {
				return it.clone(), tab, true
			}
		}
	}
	return Item{}, TabHotels, false
}
