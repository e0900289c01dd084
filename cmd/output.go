package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pool-market-client/internal/models"

	"gopkg.in/yaml.v3"
)

// printer renders command results as text, JSON or YAML
type printer struct {
	format string
	out    io.Writer
}

func newPrinter(format string, out io.Writer) (*printer, error) {
	switch format {
	case "text", "json", "yaml":
		return &printer{format: format, out: out}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// structured writes v as JSON or YAML and reports whether it did.
// YAML keys follow the JSON field names.
func (p *printer) structured(v any) (bool, error) {
	switch p.format {
	case "json":
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		data, err := json.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("failed to marshal output: %w", err)
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return true, fmt.Errorf("failed to convert output: %w", err)
		}
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return true, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return true, enc.Close()
	}
	return false, nil
}

func (p *printer) user(u *models.User) error {
	if done, err := p.structured(u); done {
		return err
	}
	if u == nil {
		_, err := fmt.Fprintln(p.out, "Not signed in.")
		return err
	}
	_, err := fmt.Fprintf(p.out, "%s %s <%s> %s\n", u.FirstName, u.LastName, u.Email, publishedCount(u))
	return err
}

func (p *printer) users(users []models.User) error {
	if done, err := p.structured(users); done {
		return err
	}
	for _, u := range users {
		if _, err := fmt.Fprintf(p.out, "%s\t%s %s\t%s\t%s\n", u.ID, u.FirstName, u.LastName, u.Email, u.Role); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) pools(pools []models.Pool) error {
	if done, err := p.structured(pools); done {
		return err
	}
	if len(pools) == 0 {
		_, err := fmt.Fprintln(p.out, "No pools.")
		return err
	}
	for _, pool := range pools {
		if _, err := fmt.Fprintf(p.out, "%s\t%s\t%s\t%d guests\t%s\n",
			pool.ID, pool.Title, pool.City, pool.Capacity, price(pool.PricePerDay)); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) pool(pool *models.Pool) error {
	if done, err := p.structured(pool); done {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", pool.Title, pool.City)
	fmt.Fprintf(&b, "  id:       %s\n", pool.ID)
	fmt.Fprintf(&b, "  guests:   %d\n", pool.Capacity)
	fmt.Fprintf(&b, "  price:    %s\n", price(pool.PricePerDay))
	fmt.Fprintf(&b, "  visible:  %t\n", pool.IsVisible)
	if pool.Owner != nil {
		fmt.Fprintf(&b, "  host:     %s %s %s\n", pool.Owner.FirstName, pool.Owner.LastName, pool.Owner.MobileNumber)
	}
	if pool.Description != nil {
		fmt.Fprintf(&b, "  about:    %s\n", *pool.Description)
	}
	for _, img := range pool.Images {
		fmt.Fprintf(&b, "  image:    %s\n", img)
	}
	_, err := io.WriteString(p.out, b.String())
	return err
}

func price(v *float64) string {
	if v == nil {
		return "price on request"
	}
	return fmt.Sprintf("%.2f KM/day", *v)
}

func publishedCount(u *models.User) string {
	if u.PublishedPoolsCount == nil {
		return ""
	}
	return fmt.Sprintf("(%d published pools)", *u.PublishedPoolsCount)
}
