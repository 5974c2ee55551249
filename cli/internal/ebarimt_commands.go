package cli

import (
	"github.com/spf13/cobra"

	qpay "github.com/qpaymn/qpay-go"
)

func newEbarimtCommand() *cobra.Command {
	ebarimtCmd := &cobra.Command{
		Use:   "ebarimt",
		Short: "Create and cancel ebarimt tax receipts",
	}

	ebarimtCmd.AddCommand(newEbarimtCreateCommand())
	ebarimtCmd.AddCommand(newEbarimtCancelCommand())

	return ebarimtCmd
}

func newEbarimtCreateCommand() *cobra.Command {
	var (
		receiverType string
		receiver     string
		districtCode string
	)

	cmd := &cobra.Command{
		Use:   "create PAYMENT_ID",
		Short: "Create an ebarimt receipt for a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			receipt, err := ctx.Client.CreateEbarimt(cmd.Context(), &qpay.CreateEbarimtRequest{
				PaymentID:           args[0],
				EbarimtReceiverType: receiverType,
				EbarimtReceiver:     receiver,
				DistrictCode:        districtCode,
			})
			if err != nil {
				return err
			}
			return printJSON(receipt)
		},
	}

	cmd.Flags().StringVar(&receiverType, "receiver-type", "CITIZEN", "Receiver type (CITIZEN, COMPANY)")
	cmd.Flags().StringVar(&receiver, "receiver", "", "Receiver register number or phone")
	cmd.Flags().StringVar(&districtCode, "district", "", "District code")

	return cmd
}

func newEbarimtCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel PAYMENT_ID",
		Short: "Cancel an ebarimt receipt by payment ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			receipt, err := ctx.Client.CancelEbarimt(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(receipt)
		},
	}
}
