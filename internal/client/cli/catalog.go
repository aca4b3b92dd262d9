package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/example/uikart/internal/client/api"
	"github.com/example/uikart/internal/client/models"
)

// List renders the current catalog snapshot as a table. Owned and free
// components are marked in the status column so the user knows what
// "show" will reveal.
func (a *App) List(ctx context.Context) error {
	comps := a.catalog.Components()
	if len(comps) == 0 {
		fmt.Fprintln(a.out, "Catalog is empty. Try 'refresh' (or 'seed' on a dev backend).")
		return nil
	}

	user := a.session.User()
	table := tablewriter.NewTable(a.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{Borders: tw.BorderNone}),
	)
	table.Header([]string{"ID", "Name", "Price", "Status"})

	rows := make([][]string, 0, len(comps))
	for _, comp := range comps {
		rows = append(rows, []string{comp.ID, comp.Name, priceLabel(comp), a.statusLabel(comp, user)})
	}
	table.Bulk(rows)
	table.Render()
	return nil
}

// Show prints the component's source code when the user is entitled to it,
// and a purchase hint otherwise.
func (a *App) Show(ctx context.Context, id string) error {
	comp, ok := a.catalog.Get(id)
	if !ok {
		fmt.Fprintf(a.out, "No component with id %q. Try 'list'.\n", id)
		return nil
	}

	fmt.Fprintf(a.out, "%s — %s\n", comp.Name, comp.Description)
	if comp.Free() || a.session.User().Owns(comp.ID) {
		fmt.Fprintln(a.out, comp.Code)
		return nil
	}

	color.New(color.FgYellow).Fprintf(a.out, "Purchase required (%s). Run: buy %s\n", priceLabel(comp), comp.ID)
	return nil
}

// Refresh refetches the catalog from the backend.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.catalog.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Could not refresh the catalog."))
		return err
	}
	fmt.Fprintf(a.out, "Catalog refreshed (%d components).\n", len(a.catalog.Components()))
	return nil
}

// Seed asks the backend to reseed its component set, then refreshes the
// local catalog so the new set is visible immediately.
func (a *App) Seed(ctx context.Context) error {
	msg, err := a.api.Seed(ctx, a.session.Token())
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Seeding failed."))
		return err
	}
	if msg != "" {
		fmt.Fprintln(a.out, msg)
	}
	return a.Refresh(ctx)
}

func priceLabel(comp models.Component) string {
	if comp.Free() {
		return "free"
	}
	return strconv.FormatInt(comp.Price, 10)
}

func (a *App) statusLabel(comp models.Component, user *models.User) string {
	switch {
	case comp.Free():
		return "free"
	case user.Owns(comp.ID):
		return "owned"
	default:
		return "locked"
	}
}
