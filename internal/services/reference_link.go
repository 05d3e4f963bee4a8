package services

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"referralbridge/internal/models"
)

// ReferenceLink renders the referral reference for admin listings. References
// created by this integration link to the order edit page; anything else is
// returned as is.
func ReferenceLink(referral *models.Referral, referralContext, orderEditURL string) string {
	if referral.Context == "" || referral.Context != referralContext {
		return referral.Reference
	}

	link := strings.ReplaceAll(orderEditURL, "{id}", url.QueryEscape(referral.Reference))
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(link), html.EscapeString(referral.Reference))
}
