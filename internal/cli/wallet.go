package cli

import (
	"github.com/spf13/cobra"

	"github.com/vaultline-hq/vaultline-go/pkg/custody"
)

func newWalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage custody wallets",
	}

	var (
		userID string
		chain  string
		label  string
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a new custody wallet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			wallet, err := runtime.CreateWallet(cmd.Context(), custody.CreateWalletRequest{
				UserID: userID,
				Chain:  chain,
				Label:  label,
			})
			if err != nil {
				return err
			}
			return printJSON(wallet)
		},
	}
	createCmd.Flags().StringVar(&userID, "user", "", "owning user id")
	createCmd.Flags().StringVar(&chain, "chain", "", "target chain (e.g. ethereum)")
	createCmd.Flags().StringVar(&label, "label", "", "optional wallet label")
	createCmd.MarkFlagRequired("user")
	createCmd.MarkFlagRequired("chain")

	getCmd := &cobra.Command{
		Use:   "get <wallet-id>",
		Short: "Fetch a wallet by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := runtime.GetWallet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(wallet)
		},
	}

	cmd.AddCommand(createCmd, getCmd)
	return cmd
}

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Look up orchestrator users",
	}

	getCmd := &cobra.Command{
		Use:   "get <user-id>",
		Short: "Fetch a user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := runtime.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}

	cmd.AddCommand(getCmd)
	return cmd
}

func newNonceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nonce <wallet-id>",
		Short: "Fetch the next usable nonce for a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nonce, err := runtime.Nonce(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(nonce)
		},
	}
}

func newGasPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gas-price <chain>",
		Short: "Fetch the current gas quote for a chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quote, err := runtime.GasPrice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(quote)
		},
	}
}
