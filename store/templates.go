package store

import (
	"context"
	"fmt"

	"github.com/labelforge/labelforge/api"
)

func (c *Client) templatesURL() string {
	return fmt.Sprintf("%s/newLabels/customer/%s/", c.base, c.customer)
}

// Templates lists the customer's saved label templates.
func (c *Client) Templates(ctx context.Context) ([]api.Template, error) {
	var templates []api.Template
	if err := c.getJSON(ctx, c.templatesURL(), &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// SaveTemplate stores a named design, overwriting any template of the same
// name.
func (c *Client) SaveTemplate(ctx context.Context, t api.Template) error {
	if t.Name == "" {
		return fmt.Errorf("template has no name")
	}
	return c.postJSON(ctx, c.templatesURL(), t)
}
