package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Marga-Ghale/skill-swap/internal/listing"
	"github.com/Marga-Ghale/skill-swap/internal/types"
	"github.com/Marga-Ghale/skill-swap/internal/view"
)

var (
	requestsStatus string
	requestsSent   bool
	requestsPage   int

	offerSkill  string
	wantSkill   string
	requestNote string
)

// requestsCmd lists incoming (or sent) swap requests
var requestsCmd = &cobra.Command{
	Use:     "requests",
	Short:   "List swap requests sent to you",
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		ctrl := listing.NewRequestController()
		if requestsSent {
			sent, err := api.FetchSentRequests(ctx)
			if err != nil {
				return err
			}
			ctrl.SetRaw(sent)
		} else {
			v := view.NewRequestsView(api, printer(cmd), logger)
			if err := v.Load(ctx); err != nil {
				return err
			}
			ctrl = v.Listing
		}
		ctrl.SetFilter(requestsStatus)
		ctrl.GoToPage(requestsPage)

		out := cmd.OutOrStdout()
		items := ctrl.PageItems()
		if len(items) == 0 {
			fmt.Fprintln(out, "No requests found.")
			return nil
		}
		writeRequests(out, items, requestsSent)
		fmt.Fprintf(out, "\npage %d of %d (%d requests)\n", ctrl.Page(), ctrl.TotalPages(), ctrl.FilteredCount())
		return nil
	},
}

// requestCmd proposes a swap to another member
var requestCmd = &cobra.Command{
	Use:     "request <member-id>",
	Short:   "Send a swap request",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		target, err := api.FetchMember(ctx, args[0])
		if err != nil {
			return err
		}
		v := view.NewMembersView(api, printer(cmd), logger)
		return v.SendRequest(ctx, *target, offerSkill, wantSkill, requestNote)
	},
}

// acceptCmd and rejectCmd decide an incoming request
var (
	acceptCmd = decisionCommand("accept", types.RequestAccepted)
	rejectCmd = decisionCommand("reject", types.RequestRejected)
)

func decisionCommand(verb, status string) *cobra.Command {
	return &cobra.Command{
		Use:     verb + " <request-id>",
		Short:   fmt.Sprintf("%s a pending swap request", verbTitle(verb)),
		Args:    cobra.ExactArgs(1),
		PreRunE: requireLogin,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()

			v := view.NewRequestsView(api, printer(cmd), logger)
			if err := v.Load(ctx); err != nil {
				return err
			}
			if !v.Decide(args[0], status) {
				return fmt.Errorf("request %s is not pending", args[0])
			}
			return v.Persist(ctx, args[0], status)
		},
	}
}

func verbTitle(verb string) string {
	return strings.ToUpper(verb[:1]) + verb[1:]
}

func init() {
	requestsCmd.Flags().StringVar(&requestsStatus, "status", listing.FilterAll, "pending, accepted, rejected or all")
	requestsCmd.Flags().BoolVar(&requestsSent, "sent", false, "List requests you sent instead")
	requestsCmd.Flags().IntVarP(&requestsPage, "page", "p", 1, "Page to show")

	requestCmd.Flags().StringVar(&offerSkill, "offer", "", "Skill you offer")
	requestCmd.Flags().StringVar(&wantSkill, "want", "", "Skill you want from them")
	requestCmd.Flags().StringVarP(&requestNote, "message", "m", "", "Optional note")
	_ = requestCmd.MarkFlagRequired("offer")
	_ = requestCmd.MarkFlagRequired("want")
}

func writeRequests(w io.Writer, requests []listing.SwapRequest, sent bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	who := "FROM"
	if sent {
		who = "TO"
	}
	fmt.Fprintf(tw, "ID\t%s\tOFFERED\tREQUESTED\tSTATUS\tSENT\n", who)
	for _, r := range requests {
		party := r.FromUser.Name
		if sent {
			party = r.ToUserID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, party, r.OfferedSkill, r.RequestedSkill, r.Status, r.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}
