package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Marga-Ghale/skill-swap/internal/listing"
	"github.com/Marga-Ghale/skill-swap/internal/view"
)

var (
	listSearch string
	listFilter string
	listPage   int
)

// membersCmd prints one page of the member directory
var membersCmd = &cobra.Command{
	Use:     "members",
	Short:   "List members, optionally searched and filtered by availability",
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		v := view.NewMembersView(api, printer(cmd), logger)
		if err := v.Load(ctx); err != nil {
			return err
		}
		v.Listing.SetSearchTerm(listSearch)
		v.Listing.SetFilter(listFilter)
		v.Listing.GoToPage(listPage)

		out := cmd.OutOrStdout()
		items := v.Listing.PageItems()
		if len(items) == 0 {
			fmt.Fprintln(out, "No members found. Try adjusting your search or filters.")
			return nil
		}
		writeMembers(out, items)
		fmt.Fprintf(out, "\npage %d of %d (%d members)\n", v.Listing.Page(), v.Listing.TotalPages(), v.Listing.FilteredCount())
		return nil
	},
}

// memberCmd prints one member's profile
var memberCmd = &cobra.Command{
	Use:     "member <id>",
	Short:   "Show a member's profile",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		m, err := api.FetchMember(ctx, args[0])
		if err != nil {
			return err
		}
		writeProfile(cmd.OutOrStdout(), m)
		return nil
	},
}

// rateCmd scores a member after a swap
var rateCmd = &cobra.Command{
	Use:     "rate <id> <score>",
	Short:   "Rate a member you swapped with (1-5)",
	Args:    cobra.ExactArgs(2),
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("score must be a number: %w", err)
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		m, err := api.RateMember(ctx, args[0], score)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now rated %.1f.\n", m.Name, m.Rating)
		return nil
	},
}

func init() {
	membersCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Match names and skills")
	membersCmd.Flags().StringVarP(&listFilter, "availability", "a", listing.FilterAll, "weekends, evenings, weekdays, flexible or all")
	membersCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page to show")
}

func writeMembers(w io.Writer, members []listing.Member) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRATING\tOFFERS\tWANTS\tAVAILABILITY")
	for _, m := range members {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\t%s\t%s\n",
			m.ID, m.Name, m.Rating,
			strings.Join(m.SkillsOffered, ", "),
			strings.Join(m.SkillsWanted, ", "),
			deref(m.Availability),
		)
	}
	tw.Flush()
}

func writeProfile(w io.Writer, m *listing.Member) {
	fmt.Fprintf(w, "%s (%s)\n", m.Name, m.ID)
	if m.Location != "" {
		fmt.Fprintf(w, "  location:     %s\n", m.Location)
	}
	if m.Bio != "" {
		fmt.Fprintf(w, "  bio:          %s\n", m.Bio)
	}
	fmt.Fprintf(w, "  offers:       %s\n", strings.Join(m.SkillsOffered, ", "))
	fmt.Fprintf(w, "  wants:        %s\n", strings.Join(m.SkillsWanted, ", "))
	fmt.Fprintf(w, "  availability: %s\n", deref(m.Availability))
	fmt.Fprintf(w, "  rating:       %.1f from %d swaps\n", m.Rating, m.TotalSwaps)
	fmt.Fprintf(w, "  public:       %t\n", m.IsPublic)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
