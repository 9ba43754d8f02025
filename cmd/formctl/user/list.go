package usercmd

import (
	"strconv"

	"github.com/spf13/cobra"

	dbcmd "github.com/faciam-dev/formfields/cmd/formctl/db"
	"github.com/faciam-dev/formfields/cmd/formctl/output"
	"github.com/faciam-dev/formfields/internal/users"
)

type userList []users.User

func (l userList) Header() []string { return []string{"ID", "Username", "Email"} }

func (l userList) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, u := range l {
		rows[i] = []string{strconv.FormatUint(u.ID, 10), u.Username, u.Email}
	}
	return rows
}

// NewListCmd creates the user list subcommand.
func NewListCmd() *cobra.Command {
	var flags dbcmd.DBFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, done, err := openStore(cmd, flags)
			if err != nil {
				return err
			}
			defer done()
			us, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			return output.Print(cmd.OutOrStdout(), outputFormat(cmd), userList(us))
		},
	}
	flags.AddFlags(cmd)
	return cmd
}
