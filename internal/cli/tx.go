package cli

import (
	"github.com/spf13/cobra"

	"github.com/vaultline-hq/vaultline-go/pkg/custody"
)

func newTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Create, sign and broadcast transactions",
	}

	var (
		walletID string
		to       string
		value    string
		data     string
		gasLimit uint64
		gasPrice string
		nonce    uint64
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Draft a new transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := custody.CreateTransactionRequest{
				WalletID: walletID,
				To:       to,
				Value:    value,
				Data:     data,
				GasLimit: gasLimit,
				GasPrice: gasPrice,
			}
			if cmd.Flags().Changed("nonce") {
				req.Nonce = &nonce
			}
			tx, err := runtime.CreateTransaction(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(tx)
		},
	}
	createCmd.Flags().StringVar(&walletID, "wallet", "", "source wallet id")
	createCmd.Flags().StringVar(&to, "to", "", "destination address")
	createCmd.Flags().StringVar(&value, "value", "", "amount in wei")
	createCmd.Flags().StringVar(&data, "data", "", "optional calldata (hex)")
	createCmd.Flags().Uint64Var(&gasLimit, "gas-limit", 0, "optional gas limit")
	createCmd.Flags().StringVar(&gasPrice, "gas-price", "", "optional gas price in wei")
	createCmd.Flags().Uint64Var(&nonce, "nonce", 0, "optional explicit nonce")
	createCmd.MarkFlagRequired("wallet")
	createCmd.MarkFlagRequired("to")
	createCmd.MarkFlagRequired("value")

	getCmd := &cobra.Command{
		Use:   "get <tx-id>",
		Short: "Fetch a transaction by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := runtime.GetTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(tx)
		},
	}

	signCmd := &cobra.Command{
		Use:   "sign <tx-id>",
		Short: "Sign a drafted transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signed, err := runtime.SignTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(signed)
		},
	}

	var force bool
	broadcastCmd := &cobra.Command{
		Use:   "broadcast <tx-id>",
		Short: "Broadcast a signed transaction to its chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runtime.BroadcastTransaction(cmd.Context(), args[0], force)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	broadcastCmd.Flags().BoolVar(&force, "force", false, "re-broadcast even if already journaled")

	cmd.AddCommand(createCmd, getCmd, signCmd, broadcastCmd)
	return cmd
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List journaled broadcast submissions",
		RunE: func(*cobra.Command, []string) error {
			subs, err := runtime.Submissions()
			if err != nil {
				return err
			}
			return printJSON(subs)
		},
	}
}
