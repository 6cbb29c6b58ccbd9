package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/travelrisk/internal/client/api"
	"github.com/dmitrijs2005/travelrisk/internal/client/forms"
	"github.com/dmitrijs2005/travelrisk/internal/client/routegate"
	"github.com/dmitrijs2005/travelrisk/internal/client/services"
)

// Destinations handles "destinations [list [-c country,...] [query]|add|update <id>|delete <id>]"
// on the travel risk page.
func (a *App) Destinations(ctx context.Context, args []string) error {
	sub, rest := "list", []string(nil)
	if len(args) > 0 {
		sub, rest = args[0], args[1:]
	}

	var page func(context.Context) error
	switch sub {
	case "list", "ls":
		page = func(ctx context.Context) error { return a.listDestinations(ctx, rest) }
	case "add":
		page = a.addDestination
	case "update", "edit":
		if len(rest) == 0 {
			a.println("Usage: destinations update <id>")
			return nil
		}
		page = func(ctx context.Context) error { return a.updateDestination(ctx, rest[0]) }
	case "delete", "rm":
		if len(rest) == 0 {
			a.println("Usage: destinations delete <id>")
			return nil
		}
		page = func(ctx context.Context) error { return a.deleteDestination(ctx, rest[0]) }
	default:
		a.printf("Unknown destinations command: %s\n", sub)
		return nil
	}
	return a.navigate(ctx, routegate.PathTravelRisk, page)
}

// parseListArgs splits "list" arguments into the search query and the
// country set given with -c.
func parseListArgs(args []string, w io.Writer) (string, []string, error) {
	fs := flag.NewFlagSet("destinations list", flag.ContinueOnError)
	fs.SetOutput(w)
	country := fs.String("c", "", "comma-separated locations to show")
	if err := fs.Parse(args); err != nil {
		return "", nil, err
	}

	var countries []string
	for _, c := range strings.Split(*country, ",") {
		if c = strings.TrimSpace(c); c != "" {
			countries = append(countries, c)
		}
	}
	return strings.Join(fs.Args(), " "), countries, nil
}

func (a *App) listDestinations(ctx context.Context, args []string) error {
	q, countries, err := parseListArgs(args, a.out)
	if err != nil {
		a.println("Usage: destinations list [-c country,...] [query]")
		return nil
	}

	list, err := a.destinations.List(ctx)
	if err != nil {
		a.toastError("Destinations", err)
		return err
	}

	filtered := services.Filter(list, q, countries)
	if len(filtered) == 0 {
		if q != "" || len(countries) > 0 {
			a.println("No destinations match your search criteria. Try adjusting your filters.")
		} else {
			a.println("No destinations tracked yet. Use 'destinations add'.")
		}
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLOCATION\tRISK\tSEVERITY\tLAST CHECKED")
	for _, d := range filtered {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", d.ID, d.Location, d.RiskLevel, services.SeverityOf(d.RiskLevel), d.LastChecked)
	}
	return tw.Flush()
}

func (a *App) addDestination(ctx context.Context) error {
	f, ok, err := a.promptDestination(forms.DestinationForm{})
	if err != nil || !ok {
		return err
	}

	d, err := a.destinations.Add(ctx, api.Destination{Location: f.Location, RiskLevel: f.RiskLevel, LastChecked: f.LastChecked})
	if err != nil {
		a.toastError("Add Destination", err)
		return err
	}
	a.toast("success", "Destination Added", fmt.Sprintf("%s (%s)", d.Location, d.ID))
	return nil
}

func (a *App) updateDestination(ctx context.Context, id string) error {
	list, err := a.destinations.List(ctx)
	if err != nil {
		a.toastError("Update Destination", err)
		return err
	}
	var current *api.Destination
	for i := range list {
		if list[i].ID == id {
			current = &list[i]
			break
		}
	}
	if current == nil {
		a.printf("Destination %s not found.\n", id)
		return nil
	}

	f, ok, err := a.promptDestination(forms.DestinationForm{
		Location:    current.Location,
		RiskLevel:   current.RiskLevel,
		LastChecked: current.LastChecked,
	})
	if err != nil || !ok {
		return err
	}

	d, err := a.destinations.Update(ctx, api.Destination{ID: id, Location: f.Location, RiskLevel: f.RiskLevel, LastChecked: f.LastChecked})
	if err != nil {
		a.toastError("Update Destination", err)
		return err
	}
	a.toast("success", "Destination Updated", fmt.Sprintf("%s risk %d", d.Location, d.RiskLevel))
	return nil
}

func (a *App) deleteDestination(ctx context.Context, id string) error {
	if err := a.destinations.Delete(ctx, id); err != nil {
		a.toastError("Delete Destination", err)
		return err
	}
	a.toast("success", "Destination Deleted", id)
	return nil
}

// promptDestination asks for every field, keeping the value in cur when the
// answer is blank. ok is false when validation failed and the errors were
// printed.
func (a *App) promptDestination(cur forms.DestinationForm) (forms.DestinationForm, bool, error) {
	f := cur

	loc, err := a.prompt(withDefault("Location", cur.Location))
	if err != nil {
		return f, false, err
	}
	if loc != "" {
		f.Location = loc
	}

	risk, err := a.prompt(withDefault("Risk level (1-100)", riskString(cur.RiskLevel)))
	if err != nil {
		return f, false, err
	}
	if risk != "" {
		n, convErr := strconv.Atoi(risk)
		if convErr != nil {
			n = 0
		}
		f.RiskLevel = n
	}

	last, err := a.prompt(withDefault("Last checked (YYYY-MM-DD, optional)", cur.LastChecked))
	if err != nil {
		return f, false, err
	}
	if last != "" {
		f.LastChecked = last
	}

	if errs := f.Validate(); len(errs) > 0 {
		a.printFormErrors(errs)
		return f, false, nil
	}
	return f, true, nil
}

func withDefault(label, def string) string {
	if def == "" {
		return label
	}
	return fmt.Sprintf("%s [%s]", label, def)
}

func riskString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
