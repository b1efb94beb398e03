// internal/responder/responder.go
package responder

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule names the matching step that produced a reply.
type Rule string

const (
	RuleEmpty            Rule = "empty"
	RuleGreeting         Rule = "greeting"
	RuleContact          Rule = "contact"
	RuleTimings          Rule = "timings"
	RuleAbout            Rule = "about"
	RuleBooking          Rule = "booking"
	RuleEquipment        Rule = "equipment"
	RuleServiceList      Rule = "service_list"
	RuleFullList         Rule = "full_list"
	RuleSubcategories    Rule = "subcategories"
	RuleCategoryNotFound Rule = "category_not_found"
	RuleCategory         Rule = "category"
	RuleSubService       Rule = "sub_service"
	RuleFallback         Rule = "fallback"
)

// Reply is a rendered answer together with the rule that matched.
type Reply struct {
	Rule Rule
	Text string
}

// Responder maps free-text messages to canned replies. It holds no mutable
// state and is safe for concurrent use.
type Responder struct {
	serviceList string
	fullList    string
	headings    map[string]string
}

// New builds a Responder over the static catalog.
func New() *Responder {
	names := displayNames()
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	title := cases.Title(language.Und)
	headings := make(map[string]string, len(subcategories))
	for _, sc := range subcategories {
		headings[sc.CategoryKey] = title.String(sc.CategoryKey)
	}

	return &Responder{
		serviceList: "Here are our main services:\n" + bullets(names) +
			"\n\nAsk for 'subcategories of kitchen cleaning' for more details.",
		fullList: "Here is the full list of services:\n" + bullets(sorted),
		headings: headings,
	}
}

// Answer returns the reply text for message. It never fails.
func (r *Responder) Answer(message string) string {
	return r.Classify(message).Text
}

// Classify runs the rules in order and returns the first match.
func (r *Responder) Classify(message string) Reply {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return Reply{Rule: RuleEmpty, Text: retypeText}
	}

	switch {
	case containsAny(msg, greetings):
		return Reply{Rule: RuleGreeting, Text: greetingText}
	case containsAny(msg, contactTriggers):
		return Reply{Rule: RuleContact, Text: contactText}
	case containsAny(msg, timingsTriggers):
		return Reply{Rule: RuleTimings, Text: timingsText}
	case containsAny(msg, aboutTriggers):
		return Reply{Rule: RuleAbout, Text: aboutText}
	case containsAny(msg, bookingTriggers):
		return Reply{Rule: RuleBooking, Text: bookingText}
	case containsAny(msg, equipmentTriggers):
		return Reply{Rule: RuleEquipment, Text: equipmentText}
	case containsAny(msg, serviceListTriggers):
		return Reply{Rule: RuleServiceList, Text: r.serviceList}
	case containsAny(msg, fullListTriggers):
		return Reply{Rule: RuleFullList, Text: r.fullList}
	case strings.Contains(msg, subcategoriesTrigger):
		return r.subcategoriesOf(msg)
	}

	if reply, ok := r.category(msg); ok {
		return reply
	}
	if reply, ok := r.subService(msg); ok {
		return reply
	}
	return Reply{Rule: RuleFallback, Text: fallbackText}
}

func (r *Responder) subcategoriesOf(msg string) Reply {
	for _, sc := range subcategories {
		if strings.Contains(msg, sc.CategoryKey) {
			return Reply{
				Rule: RuleSubcategories,
				Text: "Here are the subcategories under " + r.headings[sc.CategoryKey] + ":\n" + bullets(sc.Services),
			}
		}
	}
	return Reply{Rule: RuleCategoryNotFound, Text: categoryNotFoundText}
}

func (r *Responder) category(msg string) (Reply, bool) {
	for _, c := range categories {
		if !strings.Contains(msg, c.Key) {
			continue
		}
		services := Subcategories(c.Key)
		if len(services) == 0 {
			return Reply{
				Rule: RuleCategory,
				Text: "You asked about " + c.DisplayName + ". How can I help you with this service?",
			}, true
		}
		return Reply{
			Rule: RuleCategory,
			Text: "You asked about " + c.DisplayName + ".\n" +
				"Here are the sub services:\n" + bullets(services) + "\n\n" +
				bookingNudge,
		}, true
	}
	return Reply{}, false
}

func (r *Responder) subService(msg string) (Reply, bool) {
	for _, sc := range subcategories {
		for _, sub := range sc.Services {
			if strings.Contains(msg, sub) {
				return Reply{
					Rule: RuleSubService,
					Text: "You asked about " + sub + ".\n" +
						"This service is part of " + r.headings[sc.CategoryKey] + ".\n" +
						subServiceNudge,
				}, true
			}
		}
	}
	return Reply{}, false
}

// displayNames lists each distinct display name once, in table order.
func displayNames() []string {
	seen := make(map[string]bool, len(categories))
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if seen[c.DisplayName] {
			continue
		}
		seen[c.DisplayName] = true
		names = append(names, c.DisplayName)
	}
	return names
}

func bullets(items []string) string {
	return "- " + strings.Join(items, "\n- ")
}

func containsAny(msg string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(msg, t) {
			return true
		}
	}
	return false
}
