package cli

import (
	"github.com/spf13/cobra"

	qpay "github.com/qpaymn/qpay-go"
)

func newInvoiceCommand() *cobra.Command {
	invoiceCmd := &cobra.Command{
		Use:   "invoice",
		Short: "Create and cancel invoices",
	}

	invoiceCmd.AddCommand(newInvoiceCreateCommand())
	invoiceCmd.AddCommand(newInvoiceCancelCommand())

	return invoiceCmd
}

func newInvoiceCreateCommand() *cobra.Command {
	var (
		receiverCode string
		description  string
		amount       float64
		invoiceNo    string
		branchCode   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a simple invoice",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			inv, err := ctx.Client.CreateSimpleInvoice(cmd.Context(), &qpay.CreateSimpleInvoiceRequest{
				SenderInvoiceNo:     invoiceNo,
				InvoiceReceiverCode: receiverCode,
				InvoiceDescription:  description,
				Amount:              amount,
				SenderBranchCode:    branchCode,
			})
			if err != nil {
				return err
			}
			return printJSON(inv)
		},
	}

	cmd.Flags().StringVar(&receiverCode, "receiver", "", "Invoice receiver code")
	cmd.Flags().StringVar(&description, "description", "", "Invoice description")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Invoice amount")
	cmd.Flags().StringVar(&invoiceNo, "invoice-no", "", "Sender invoice number (generated when omitted)")
	cmd.Flags().StringVar(&branchCode, "branch", "", "Sender branch code")
	_ = cmd.MarkFlagRequired("receiver")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newInvoiceCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel INVOICE_ID",
		Short: "Cancel an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			if err := ctx.Client.CancelInvoice(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf("Invoice %s canceled\n", args[0])
			return nil
		},
	}
}
