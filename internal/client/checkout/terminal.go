// Package checkout provides the interactive checkout surface for the CLI.
// It stands in for the hosted payment widget a browser client would embed:
// the buyer completes the payment out of band and pastes the provider's
// payment id and signature back into the terminal.
package checkout

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/example/uikart/internal/client/models"
	"github.com/example/uikart/internal/client/purchase"
)

type Terminal struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{reader: bufio.NewReader(r), out: w}
}

// Open prints the order summary and collects the proof-of-payment fields.
// Submitting an empty line at either prompt dismisses the checkout: Open
// returns nil without invoking the handler.
func (t *Terminal) Open(ctx context.Context, req purchase.CheckoutRequest) error {
	fmt.Fprintf(t.out, "%s — %s\n", req.Name, req.Description)
	fmt.Fprintf(t.out, "Order %s: %d.%02d %s (key %s, receipt %s)\n",
		req.OrderID, req.Amount/100, req.Amount%100, req.Currency, req.Key, req.Receipt)

	paymentID, err := t.prompt(ctx, "Payment id (empty line to cancel)")
	if err != nil {
		return err
	}
	if paymentID == "" {
		fmt.Fprintln(t.out, "Checkout cancelled.")
		return nil
	}

	signature, err := t.prompt(ctx, "Payment signature (empty line to cancel)")
	if err != nil {
		return err
	}
	if signature == "" {
		fmt.Fprintln(t.out, "Checkout cancelled.")
		return nil
	}

	req.Handler(models.PaymentProof{
		OrderID:   req.OrderID,
		PaymentID: paymentID,
		Signature: signature,
	})
	return nil
}

func (t *Terminal) prompt(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(t.out, text+"\n> "); err != nil {
		return "", err
	}
	line, err := t.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
