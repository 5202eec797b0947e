package usecase

import (
	"fmt"

	"visitor-alert-srv/internal/alert/render"
	"visitor-alert-srv/internal/model"
)

// visitorFieldKeys maps payload keys to the labels renderers show, in
// display order.
var visitorFieldKeys = []struct {
	key   string
	label string
}{
	{"visitorName", "Name"},
	{"visitorEmail", "Email"},
	{"visitorCompany", "Company"},
	{"visitorTitle", "Title"},
	{"campaignName", "Campaign"},
}

// visitorFields extracts the labelled detail rows present in an alert's
// payload.
func visitorFields(data model.JSONB) []render.Field {
	if len(data) == 0 {
		return nil
	}

	fields := make([]render.Field, 0, len(visitorFieldKeys))
	for _, fk := range visitorFieldKeys {
		v, ok := data[fk.key]
		if !ok {
			continue
		}
		s := fmt.Sprintf("%v", v)
		if s == "" {
			continue
		}
		fields = append(fields, render.Field{Label: fk.label, Value: s})
	}
	return fields
}
