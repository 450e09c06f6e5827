package cmd

import (
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// settingsCmd represents the settings related commands
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Commands to manage texpack settings",
	Long: `Commands to manage texpack settings.

Settings are the common set of flags that do not change across runs, such as the vendor directory
or the java runtime. They are read from $HOME/.texpack/texpack.yaml, ./texpack.yaml or the file named by
$TEXPACK_SETTINGS, and may be overridden by TEXPACK_* environment variables and flags.`,
}

var settingsShow = &cobra.Command{
	Use:   "show",
	Short: "Prints the settings in effect",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		o, err := yaml.Marshal(settings)
		if err != nil {
			wrapFatalln("serialize settings to yaml", err)
			return
		}
		logStdOut("%s", o)
	},
}

var settingsCreate = &cobra.Command{
	Use:   "create",
	Short: "Saves the settings in effect",
	Long:  "Saves the settings in effect, including flags of this command, to $HOME/.texpack/texpack.yaml",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		u, err := user.Current()
		if u == nil || err != nil {
			wrapFatalln("could not get home directory for user", err)
			return
		}
		o, err := yaml.Marshal(settings)
		if err != nil {
			wrapFatalln("serialize settings to yaml", err)
			return
		}
		dir := filepath.Join(u.HomeDir, ".texpack")
		_ = os.Mkdir(dir, 0777)
		target := filepath.Join(dir, "texpack.yaml")
		if err = ioutil.WriteFile(target, o, 0666); err != nil {
			wrapFatalln("write settings file", err)
			return
		}
		infoLogger.Printf("settings saved to %s", target)
	},
}

func init() {
	settingsCmd.AddCommand(settingsShow)
	settingsCmd.AddCommand(settingsCreate)
	rootCmd.AddCommand(settingsCmd)
}
