package booking

import (
	"context"
	"fmt"
	"strings"
)

// BuildSessionCSV renders a session's registrations for download.
func (s *Service) BuildSessionCSV(ctx context.Context, sessionSelector string) (string, error) {
	sess, err := s.registry.Get(ctx, sessionSelector)
	if err != nil {
		return "", err
	}
	regs, err := s.ledger.List(ctx)
	if err != nil {
		return "", err
	}

	b := strings.Builder{}
	b.WriteString("session,date,player,phone,status,amount,timestamp\n")
	for _, r := range regs {
		if !r.BelongsTo(sess) {
			continue
		}
		line := fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s\n",
			escapeCSV(sess.Name),
			escapeCSV(r.SessionDate),
			escapeCSV(r.PlayerName),
			escapeCSV(r.Phone),
			escapeCSV(r.Status),
			escapeCSV(r.Fee),
			escapeCSV(r.CreatedAt),
		)
		b.WriteString(line)
	}
	return b.String(), nil
}

func escapeCSV(s string) string {
	s = strings.ReplaceAll(s, `"`, `""`)
	if strings.ContainsAny(s, ",\n\r") {
		return `"` + s + `"`
	}
	return s
}
