package store

import "context"

// Fields lists the data field names the customer's print runtime can bind.
// Callers fall back to the builtin catalog when this fails; the editor stays
// usable offline.
func (c *Client) Fields(ctx context.Context) ([]string, error) {
	var fields []string
	if err := c.getJSON(ctx, c.base+"/fields", &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
