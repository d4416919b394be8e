package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/glass/cmd/add"
	"github.com/gigurra/glass/cmd/config"
	"github.com/gigurra/glass/cmd/list"
	"github.com/gigurra/glass/cmd/play"
	"github.com/gigurra/glass/cmd/track"
	"github.com/spf13/cobra"
)

const (
	groupLibrary  = "library"
	groupPlayback = "playback"
	groupSettings = "settings"
)

// withGroup sets the GroupID on a command and returns it
func withGroup(cmd *cobra.Command, group string) *cobra.Command {
	cmd.GroupID = group
	return cmd
}

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "glass",
		Short:   "A terminal music player with a local library",
		Version: appVersion(),
		Groups: []*cobra.Group{
			{ID: groupLibrary, Title: "Library:"},
			{ID: groupPlayback, Title: "Playback:"},
			{ID: groupSettings, Title: "Settings:"},
		},
		SubCmds: []*cobra.Command{
			// Library
			withGroup(add.Cmd(), groupLibrary),
			withGroup(list.Cmd(), groupLibrary),
			withGroup(track.Cmd(), groupLibrary),

			// Playback
			withGroup(play.Cmd(), groupPlayback),

			// Settings
			withGroup(config.Cmd(), groupSettings),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuilInfo := debug.ReadBuildInfo()
	if !hasBuilInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
