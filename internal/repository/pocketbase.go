package repository

import (
	"encoding/json"

	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
)

// NewRepositories wires one accessor per remote collection over a shared
// PocketBase client.
func NewRepositories(client *pocketbase.Client, log *logger.Logger) *Repositories {
	return &Repositories{
		Partners:      &partnerRepository{client: client, logger: log},
		Stats:         &statsRepository{client: client, logger: log},
		Activities:    &activityRepository{client: client, logger: log},
		Analytics:     &analyticsRepository{client: client, logger: log},
		Users:         &userRepository{client: client, logger: log},
		Notifications: &notificationRepository{client: client, logger: log},
		Settings:      &settingsRepository{client: client, logger: log},
		Messages:      &messageRepository{client: client, logger: log},
		Monthly:       &monthlyStatsRepository{client: client, logger: log},
	}
}

// decodeList decodes raw records into typed values, dropping entries that
// fail to decode rather than poisoning the whole list.
func decodeList[T any](items []json.RawMessage, log *logger.Logger, collection string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			log.WithError(err).WithField("collection", collection).Warn("Skipping undecodable record")
			continue
		}
		out = append(out, v)
	}
	return out
}
