// Package detector evaluates one visit snapshot against the closed set of
// notification-worthy conditions. Evaluation is pure except for the prior
// session lookup the returning-visitor rule performs itself.
package detector

import (
	"context"
	"fmt"
	"strings"

	"visitor-alert-srv/internal/model"
	"visitor-alert-srv/pkg/log"
)

// Thresholds for the counter-based rules.
const (
	minChatMessages      = 5
	priorChatSumFloor    = 3
	priorAvgTimeFloorSec = 60.0
)

// executiveKeywords are matched case-insensitively as substrings of the
// visitor's job title.
var executiveKeywords = []string{
	"ceo", "cto", "cfo", "coo", "cmo", "cio",
	"chief", "president", "vp", "vice president",
	"director", "head of", "svp", "evp",
}

// SessionLookup is the one read the detector performs itself: all visits
// for the same campaign and visitor email under a different session id.
type SessionLookup interface {
	PriorSessions(ctx context.Context, campaignID, visitorEmail, excludeSessionID string) ([]model.Visit, error)
}

// Condition is one candidate notification produced by a rule. Data carries
// enough of the visitor/campaign snapshot for channel renderers to build a
// self-contained message without re-querying.
type Condition struct {
	Kind    model.AlertKind
	Title   string
	Message string
	Data    model.JSONB
}

// Detector runs all rules against one visit. Rules are independent; a
// single visit may satisfy several of them.
type Detector struct {
	l        log.Logger
	sessions SessionLookup
}

// New creates a Detector.
func New(l log.Logger, sessions SessionLookup) *Detector {
	return &Detector{
		l:        l,
		sessions: sessions,
	}
}

// Detect returns the ordered list of conditions the visit satisfies.
func (d *Detector) Detect(ctx context.Context, visit model.Visit, camp model.CampaignContext) []Condition {
	var conds []Condition

	if c, ok := d.highValueVisitor(visit, camp); ok {
		conds = append(conds, c)
	}
	if c, ok := d.executiveVisit(visit, camp); ok {
		conds = append(conds, c)
	}
	if c, ok := d.multipleChatMessages(visit, camp); ok {
		conds = append(conds, c)
	}
	if c, ok := d.formSubmission(visit, camp); ok {
		conds = append(conds, c)
	}
	if c, ok := d.ctaClicked(visit, camp); ok {
		conds = append(conds, c)
	}
	if c, ok := d.returningVisitor(ctx, visit, camp); ok {
		conds = append(conds, c)
	}

	return conds
}

// highValueVisitor fires when the visitor's self-reported company exactly
// equals the campaign's target company name. The match is case-sensitive on
// purpose; widening it is a product decision, not a bug fix.
func (d *Detector) highValueVisitor(visit model.Visit, camp model.CampaignContext) (Condition, bool) {
	if !visit.VisitorEmail.Valid || visit.VisitorEmail.String == "" {
		return Condition{}, false
	}
	if !visit.VisitorCompany.Valid || visit.VisitorCompany.String != camp.CompanyName {
		return Condition{}, false
	}

	return Condition{
		Kind:    model.AlertKindHighValueVisitor,
		Title:   fmt.Sprintf("High-value visitor on %s", camp.CampaignName),
		Message: fmt.Sprintf("%s from %s matches your target company.", visitorLabel(visit), visit.VisitorCompany.String),
		Data:    baseData(visit, camp),
	}, true
}

func (d *Detector) executiveVisit(visit model.Visit, camp model.CampaignContext) (Condition, bool) {
	if !visit.VisitorTitle.Valid || visit.VisitorTitle.String == "" {
		return Condition{}, false
	}

	title := strings.ToLower(visit.VisitorTitle.String)
	matched := false
	for _, kw := range executiveKeywords {
		if strings.Contains(title, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return Condition{}, false
	}

	return Condition{
		Kind:    model.AlertKindExecutiveVisit,
		Title:   fmt.Sprintf("Executive visit on %s", camp.CampaignName),
		Message: fmt.Sprintf("%s (%s) is viewing your campaign.", visitorLabel(visit), visit.VisitorTitle.String),
		Data:    baseData(visit, camp),
	}, true
}

func (d *Detector) multipleChatMessages(visit model.Visit, camp model.CampaignContext) (Condition, bool) {
	if visit.ChatMessages < minChatMessages {
		return Condition{}, false
	}

	data := baseData(visit, camp)
	data["chatMessages"] = visit.ChatMessages
	return Condition{
		Kind:    model.AlertKindMultipleChatMessages,
		Title:   fmt.Sprintf("Active chat on %s", camp.CampaignName),
		Message: fmt.Sprintf("%s sent %d chat messages.", visitorLabel(visit), visit.ChatMessages),
		Data:    data,
	}, true
}

func (d *Detector) formSubmission(visit model.Visit, camp model.CampaignContext) (Condition, bool) {
	if !visit.FormSubmitted {
		return Condition{}, false
	}

	return Condition{
		Kind:    model.AlertKindFormSubmission,
		Title:   fmt.Sprintf("Form submitted on %s", camp.CampaignName),
		Message: fmt.Sprintf("%s submitted the contact form.", visitorLabel(visit)),
		Data:    baseData(visit, camp),
	}, true
}

func (d *Detector) ctaClicked(visit model.Visit, camp model.CampaignContext) (Condition, bool) {
	if !visit.CtaClicked {
		return Condition{}, false
	}

	return Condition{
		Kind:    model.AlertKindCtaClicked,
		Title:   fmt.Sprintf("CTA clicked on %s", camp.CampaignName),
		Message: fmt.Sprintf("%s clicked your call to action.", visitorLabel(visit)),
		Data:    baseData(visit, camp),
	}, true
}

// returningVisitor fires when the visitor has at least one prior session on
// this campaign and either summed prior chat messages exceed the floor or
// mean prior time-on-page does. A lookup failure skips the rule; the other
// rules are unaffected.
func (d *Detector) returningVisitor(ctx context.Context, visit model.Visit, camp model.CampaignContext) (Condition, bool) {
	if !visit.VisitorEmail.Valid || visit.VisitorEmail.String == "" {
		return Condition{}, false
	}

	prior, err := d.sessions.PriorSessions(ctx, visit.CampaignID, visit.VisitorEmail.String, visit.SessionID)
	if err != nil {
		d.l.Errorf(ctx, "internal.alert.detector.returningVisitor.PriorSessions: %v", err)
		return Condition{}, false
	}
	if len(prior) == 0 {
		return Condition{}, false
	}

	totalChats := 0
	totalTime := 0
	for _, p := range prior {
		totalChats += p.ChatMessages
		totalTime += p.TimeOnPage
	}
	avgTime := float64(totalTime) / float64(len(prior))

	if totalChats <= priorChatSumFloor && avgTime <= priorAvgTimeFloorSec {
		return Condition{}, false
	}

	totalVisits := len(prior) + 1
	data := baseData(visit, camp)
	data["totalVisits"] = totalVisits
	data["priorChatMessages"] = totalChats
	data["avgTimeOnPage"] = avgTime
	return Condition{
		Kind:    model.AlertKindReturningVisitor,
		Title:   fmt.Sprintf("Returning visitor on %s", camp.CampaignName),
		Message: fmt.Sprintf("%s is back for visit #%d.", visitorLabel(visit), totalVisits),
		Data:    data,
	}, true
}

// baseData is the common snapshot every condition carries.
func baseData(visit model.Visit, camp model.CampaignContext) model.JSONB {
	data := model.JSONB{
		"campaignName": camp.CampaignName,
	}
	if visit.VisitorName.Valid && visit.VisitorName.String != "" {
		data["visitorName"] = visit.VisitorName.String
	}
	if visit.VisitorEmail.Valid && visit.VisitorEmail.String != "" {
		data["visitorEmail"] = visit.VisitorEmail.String
	}
	if visit.VisitorCompany.Valid && visit.VisitorCompany.String != "" {
		data["visitorCompany"] = visit.VisitorCompany.String
	}
	if visit.VisitorTitle.Valid && visit.VisitorTitle.String != "" {
		data["visitorTitle"] = visit.VisitorTitle.String
	}
	return data
}

func visitorLabel(visit model.Visit) string {
	if visit.VisitorName.Valid && visit.VisitorName.String != "" {
		return visit.VisitorName.String
	}
	if visit.VisitorEmail.Valid && visit.VisitorEmail.String != "" {
		return visit.VisitorEmail.String
	}
	return "An anonymous visitor"
}
