package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/annerobin/therapy-booking/internal/store"
)

// Key is where the settings blob lives in the key-value store.
const Key = "settings"

type AlertFrequency string

const (
	AlertImmediate AlertFrequency = "IMMEDIATE"
	AlertDaily     AlertFrequency = "DAILY"
	AlertWeekly    AlertFrequency = "WEEKLY"
)

type AlertChannel string

const (
	ChannelEmail AlertChannel = "EMAIL"
	ChannelSMS   AlertChannel = "SMS"
	ChannelBoth  AlertChannel = "BOTH"
)

// AdminSettings is the practice-wide singleton configuration.
type AdminSettings struct {
	NotificationEmail string `json:"notificationEmail"`
	ReceiveAlerts     bool   `json:"receiveAlerts"`
	AutoApprove       bool   `json:"autoApprove"`

	// Billing identity
	PricePerSession float64 `json:"pricePerSession"`
	SIRET           string  `json:"siret"`
	Address         string  `json:"address"`
	City            string  `json:"city"`

	// Notification preferences
	AlertFrequency                AlertFrequency `json:"alertFrequency"`
	AlertChannel                  AlertChannel   `json:"alertChannel"`
	PendingRequestsThreshold      int            `json:"pendingRequestsThreshold"`
	UpcomingAppointmentsThreshold int            `json:"upcomingAppointmentsThreshold"`
}

func Defaults() AdminSettings {
	return AdminSettings{
		NotificationEmail:             "annerobinccf@outlook.fr",
		ReceiveAlerts:                 true,
		AutoApprove:                   true,
		PricePerSession:               150,
		SIRET:                         "123 456 789 00012",
		Address:                       "109 ter, Rue Pierre Loti",
		City:                          "17300 Rochefort",
		AlertFrequency:                AlertImmediate,
		AlertChannel:                  ChannelEmail,
		PendingRequestsThreshold:      1,
		UpcomingAppointmentsThreshold: 1,
	}
}

// Store persists the one settings record. Reads merge the stored blob over
// the defaults so fields added after the blob was written still come back
// populated; saves overwrite the blob wholesale.
type Store struct {
	kv store.Store
}

func NewStore(kv store.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) Get(ctx context.Context) (AdminSettings, error) {
	result := Defaults()

	data, err := s.kv.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return result, nil
		}
		return AdminSettings{}, fmt.Errorf("load settings: %w", err)
	}

	// Unmarshal over the defaults: absent fields keep their default value.
	if err := json.Unmarshal(data, &result); err != nil {
		return AdminSettings{}, fmt.Errorf("decode settings: %w", err)
	}
	return result, nil
}

func (s *Store) Save(ctx context.Context, cfg AdminSettings) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
