// ABOUTME: Recommendation controller requesting an outfit for an occasion
// ABOUTME: Stateless; every request supersedes the prior result

package outfit

import (
	"context"
	"strings"

	"github.com/wardrobeapp/wardrobe-cli/internal/client"
)

// EmptyMessage is rendered when the server returns an outfit with no slots.
const EmptyMessage = "Cannot generate an outfit yet. Upload a top, bottom, and shoes first."

// Controller requests outfit recommendations. It holds no state.
type Controller struct {
	client *client.Client
}

// New creates a recommendation controller.
func New(c *client.Client) *Controller {
	return &Controller{client: c}
}

// Recommend fetches an outfit for the occasion.
func (c *Controller) Recommend(ctx context.Context, occasion string) (*client.Recommendation, error) {
	return c.client.Recommend(ctx, occasion)
}

// ReasonText joins the recommendation's reasons into one explanation line.
func ReasonText(rec *client.Recommendation) string {
	if rec == nil || len(rec.Reasons) == 0 {
		return ""
	}
	return "Why: " + strings.Join(rec.Reasons, "; ")
}
