package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/annerobin/therapy-booking/internal/activity"
)

type EventKind string

const (
	EventRequest    EventKind = "REQUEST"
	EventConfirm    EventKind = "CONFIRM"
	EventCancel     EventKind = "CANCEL"
	EventReschedule EventKind = "RESCHEDULE"
	EventInvoice    EventKind = "INVOICE"
)

// Notifier simulates outbound email and SMS. Delivery is out of scope: each
// event becomes human-readable lines in the activity feed and nothing leaves
// the process.
type Notifier struct {
	log activity.Log
}

func NewNotifier(log activity.Log) *Notifier {
	return &Notifier{log: log}
}

// Email records a simulated email notification for an appointment event.
func (n *Notifier) Email(ctx context.Context, kind EventKind, date, tm, clientEmail, clientName string) {
	var msg, logMsg string

	switch kind {
	case EventRequest:
		msg = fmt.Sprintf("Nouvelle demande de RDV : %s le %s à %s", clientName, date, tm)
		logMsg = fmt.Sprintf("Email de réception demande envoyé à %s", clientEmail)
	case EventConfirm:
		msg = fmt.Sprintf("Réservation confirmée : %s le %s à %s", clientName, date, tm)
		logMsg = fmt.Sprintf("Email de confirmation envoyé à %s", clientEmail)
	case EventCancel:
		msg = fmt.Sprintf("RDV annulé : %s le %s à %s", clientName, date, tm)
		logMsg = fmt.Sprintf("Email d'annulation envoyé à %s", clientEmail)
	case EventReschedule:
		msg = fmt.Sprintf("RDV reporté : %s, nouveau créneau le %s à %s", clientName, date, tm)
		logMsg = fmt.Sprintf("Email de report envoyé à %s", clientEmail)
	case EventInvoice:
		msg = fmt.Sprintf("Facture générée : %s", clientName)
		logMsg = fmt.Sprintf("Facture envoyée par email à %s", clientEmail)
	default:
		return
	}

	// New requests and confirmations also show up as booking activity.
	if kind == EventRequest || kind == EventConfirm {
		n.record(ctx, activity.TypeBooking, msg)
	}
	n.record(ctx, activity.TypeEmail, logMsg)
}

// SMS records a simulated SMS reminder or confirmation.
func (n *Notifier) SMS(ctx context.Context, clientName string, reminder bool) {
	msg := fmt.Sprintf("Confirmation SMS envoyée à %s.", clientName)
	if reminder {
		msg = fmt.Sprintf("Rappel envoyé par SMS à %s.", clientName)
	}
	n.record(ctx, activity.TypeSMS, msg)
}

func (n *Notifier) record(ctx context.Context, typ activity.EntryType, msg string) {
	if err := n.log.Record(ctx, typ, msg); err != nil {
		// A lost activity line must never fail the booking operation.
		log.Printf("record activity failed type=%s: %v", typ, err)
	}
}
