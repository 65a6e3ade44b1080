// Package assist produces templated practitioner-facing text. The templates
// stand in for a text-generation provider; swap the implementations if one is
// reintroduced.
package assist

import (
	"fmt"
	"strings"
)

const summaryLimit = 200

// ClientResponse drafts a short confirmation reply the practitioner can send.
func ClientResponse(clientName, date, tm string) string {
	return fmt.Sprintf(
		"Bonjour %s,\n\nMerci pour votre message. Votre rendez-vous du %s à %s est confirmé.\n\nCordialement,\nVotre thérapeute",
		orClient(clientName), date, tm)
}

// ReminderEmail drafts a reminder for an upcoming appointment.
func ReminderEmail(clientName, date, tm string) string {
	return fmt.Sprintf(
		"Bonjour %s,\n\nRappel : vous avez un rendez-vous le %s à %s. Merci de confirmer votre présence.\n\nÀ bientôt.",
		orClient(clientName), date, tm)
}

// SummarizeNote condenses a client note for the dashboard.
func SummarizeNote(note string) string {
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return "Aucun contenu à résumer."
	}
	if len([]rune(trimmed)) <= summaryLimit {
		return trimmed
	}
	return string([]rune(trimmed)[:summaryLimit]) + "..."
}

func orClient(name string) string {
	if name == "" {
		return "Client"
	}
	return name
}
