package cli

import (
	"github.com/spf13/cobra"

	qpay "github.com/qpaymn/qpay-go"
)

func newPaymentCommand() *cobra.Command {
	paymentCmd := &cobra.Command{
		Use:   "payment",
		Short: "Inspect, cancel, and refund payments",
	}

	paymentCmd.AddCommand(newPaymentGetCommand())
	paymentCmd.AddCommand(newPaymentCheckCommand())
	paymentCmd.AddCommand(newPaymentListCommand())
	paymentCmd.AddCommand(newPaymentCancelCommand())
	paymentCmd.AddCommand(newPaymentRefundCommand())

	return paymentCmd
}

func newPaymentGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PAYMENT_ID",
		Short: "Retrieve payment details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			payment, err := ctx.Client.GetPayment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(payment)
		},
	}
}

func newPaymentCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check INVOICE_ID",
		Short: "Check whether an invoice has been paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			result, err := ctx.Client.CheckPayment(cmd.Context(), &qpay.PaymentCheckRequest{
				ObjectType: "INVOICE",
				ObjectID:   args[0],
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func newPaymentListCommand() *cobra.Command {
	var (
		objectType string
		startDate  string
		endDate    string
		page       int
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list OBJECT_ID",
		Short: "List payments for an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			result, err := ctx.Client.ListPayments(cmd.Context(), &qpay.PaymentListRequest{
				ObjectType: objectType,
				ObjectID:   args[0],
				StartDate:  startDate,
				EndDate:    endDate,
				Offset: qpay.Offset{
					PageNumber: page,
					PageLimit:  limit,
				},
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&objectType, "object-type", "INVOICE", "Object type (INVOICE, QR, ITEM)")
	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 100, "Page size")

	return cmd
}

func newPaymentCancelCommand() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "cancel PAYMENT_ID",
		Short: "Cancel a payment (card transactions only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			err = ctx.Client.CancelPayment(cmd.Context(), args[0], &qpay.PaymentCancelRequest{
				Note: note,
			})
			if err != nil {
				return err
			}
			cmd.Printf("Payment %s canceled\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Cancellation note")
	return cmd
}

func newPaymentRefundCommand() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "refund PAYMENT_ID",
		Short: "Refund a payment (card transactions only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := getCliContext(cmd)
			if err != nil {
				return err
			}

			err = ctx.Client.RefundPayment(cmd.Context(), args[0], &qpay.PaymentRefundRequest{
				Note: note,
			})
			if err != nil {
				return err
			}
			cmd.Printf("Payment %s refunded\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Refund note")
	return cmd
}
