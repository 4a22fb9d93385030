package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	kerrors "github.com/khel-store/khel/internal/errors"
	"github.com/khel-store/khel/internal/guard"
	"github.com/khel-store/khel/internal/session"
	"github.com/khel-store/khel/internal/ux"
)

var memberCmd = &cobra.Command{
	Use:   "member <member-id>",
	Short: "Look up a member by id",
	Long: `Fetch a member's record by id. Requires a signed-in session.

Examples:
  khel member 7
  khel member 7 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runMember,
}

func runMember(cmd *cobra.Command, args []string) error {
	if err := requireUser(cmd.Context(), guard.ViewProfile); err != nil {
		return err
	}

	memberID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return kerrors.New(kerrors.ErrCodeAPINotFound,
			fmt.Sprintf("invalid member id %q", args[0]))
	}

	member, err := app.client.GetMember(cmd.Context(), memberID)
	if err != nil {
		return err
	}

	if structured() {
		return emit(member)
	}

	fmt.Println(ux.MembersTable([]session.Member{*member}))
	return nil
}

func init() {
	rootCmd.AddCommand(memberCmd)
}
