package main

import (
	"github.com/spf13/cobra"

	"github.com/Marga-Ghale/skill-swap/internal/view"
)

var (
	profileName         string
	profileLocation     string
	profileBio          string
	profileAvailability string
	profilePublic       bool
	profileAddOffered   []string
	profileAddWanted    []string
	profileDropOffered  []string
	profileDropWanted   []string
)

// profileCmd shows the caller's own profile
var profileCmd = &cobra.Command{
	Use:     "profile",
	Short:   "Show your profile",
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		m, err := api.FetchProfile(ctx)
		if err != nil {
			return err
		}
		writeProfile(cmd.OutOrStdout(), m)
		return nil
	},
}

// profileSetCmd edits the profile; only the given flags change
var profileSetCmd = &cobra.Command{
	Use:     "set",
	Short:   "Edit your profile",
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		editor := view.NewProfileEditor(api, printer(cmd), logger)
		if err := editor.Load(ctx); err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			editor.SetName(profileName)
		}
		if flags.Changed("location") {
			editor.SetLocation(profileLocation)
		}
		if flags.Changed("bio") {
			editor.SetBio(profileBio)
		}
		if flags.Changed("availability") {
			editor.SetAvailability(profileAvailability)
		}
		if flags.Changed("public") {
			editor.SetPublic(profilePublic)
		}
		for _, s := range profileAddOffered {
			editor.AddSkillOffered(s)
		}
		for _, s := range profileAddWanted {
			editor.AddSkillWanted(s)
		}
		for _, s := range profileDropOffered {
			editor.RemoveSkillOffered(s)
		}
		for _, s := range profileDropWanted {
			editor.RemoveSkillWanted(s)
		}

		if !editor.Dirty() {
			cmd.Println("Nothing to change.")
			return nil
		}
		return editor.Save(ctx)
	},
}

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&profileName, "name", "", "Display name")
	f.StringVar(&profileLocation, "location", "", "Where you are")
	f.StringVar(&profileBio, "bio", "", "Short introduction")
	f.StringVar(&profileAvailability, "availability", "", "When you can swap, e.g. Weekends")
	f.BoolVar(&profilePublic, "public", true, "List your profile in the directory")
	f.StringSliceVar(&profileAddOffered, "offer", nil, "Add skills you offer")
	f.StringSliceVar(&profileAddWanted, "want", nil, "Add skills you want")
	f.StringSliceVar(&profileDropOffered, "drop-offer", nil, "Remove skills you offer")
	f.StringSliceVar(&profileDropWanted, "drop-want", nil, "Remove skills you want")

	profileCmd.AddCommand(profileSetCmd)
}
