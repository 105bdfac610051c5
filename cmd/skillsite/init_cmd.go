package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default skillsite.yaml config file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, _ := cmd.Flags().GetString("config")

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

const defaultConfig = `# skillsite configuration
# Every key can be set as SKILLSITE_<SECTION>_<KEY>, e.g. SKILLSITE_ADMIN_PASSWORD.

site:
  name: Acquire Any Skill
  tagline: Learn Everyday
  url: http://localhost:3000
  description: Learn a new skill every day.

server:
  addr: ":3000"
  dev: false
  secure: false       # set when serving over HTTPS

database:
  path: data/site.db

content:
  path: ""            # empty = embedded catalog; file or directory of .yaml/.toml

media:
  dir: public/media

cache:
  ttl: 5m

posts:
  perpage: 10         # posts per page on /posts

admin:
  password: ""        # empty disables /admin
  secret: ""          # session secret, required with a password
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
