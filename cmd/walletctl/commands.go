package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/hsbu/gopay-api-demo/internal/infrastructure/grpcclient"
)

const callTimeout = 10 * time.Second

type walletClient interface {
	PayQRIS(ctx context.Context, amount int64, merchant string) (map[string]any, error)
	TopUp(ctx context.Context, amount int64) (map[string]any, error)
	StartKYC(ctx context.Context, nik, name string) (map[string]any, error)
	GetAccount(ctx context.Context) (map[string]any, error)
	Close() error
}

type dialer func(addr, userID string) (walletClient, error)

func dialWallet(addr, userID string) (walletClient, error) {
	c, err := grpcclient.NewClient(addr, userID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

type rootOptions struct {
	addr   string
	userID string
}

func newRootCmd(out io.Writer, dial dialer) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "walletctl",
		Short:         "Drive the wallet simulator over gRPC",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&opts.addr, "addr", "localhost:50051", "wallet simulator gRPC address")
	rootCmd.PersistentFlags().StringVar(&opts.userID, "user", "", "user ID (server default when empty)")

	rootCmd.AddCommand(payCmd(opts, dial))
	rootCmd.AddCommand(topUpCmd(opts, dial))
	rootCmd.AddCommand(kycCmd(opts, dial))
	rootCmd.AddCommand(accountCmd(opts, dial))

	return rootCmd
}

func payCmd(opts *rootOptions, dial dialer) *cobra.Command {
	var (
		amount   int64
		merchant string
	)

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Pay a merchant via QRIS",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, dial, func(ctx context.Context, c walletClient) (map[string]any, error) {
				return c.PayQRIS(ctx, amount, merchant)
			})
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "amount in IDR")
	cmd.Flags().StringVar(&merchant, "merchant", "", "merchant name")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func topUpCmd(opts *rootOptions, dial dialer) *cobra.Command {
	var amount int64

	cmd := &cobra.Command{
		Use:   "topup",
		Short: "Simulate a bank virtual account top-up webhook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, dial, func(ctx context.Context, c walletClient) (map[string]any, error) {
				return c.TopUp(ctx, amount)
			})
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "amount in IDR")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func kycCmd(opts *rootOptions, dial dialer) *cobra.Command {
	var nik, name string

	cmd := &cobra.Command{
		Use:   "kyc",
		Short: "Submit identity and upgrade the account to Verified",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, dial, func(ctx context.Context, c walletClient) (map[string]any, error) {
				return c.StartKYC(ctx, nik, name)
			})
		},
	}

	cmd.Flags().StringVar(&nik, "nik", "", "national identity number")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	_ = cmd.MarkFlagRequired("nik")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func accountCmd(opts *rootOptions, dial dialer) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show account tier and limit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, dial, func(ctx context.Context, c walletClient) (map[string]any, error) {
				return c.GetAccount(ctx)
			})
		},
	}
}

func run(
	cmd *cobra.Command,
	opts *rootOptions,
	dial dialer,
	call func(ctx context.Context, c walletClient) (map[string]any, error),
) error {
	client, err := dial(opts.addr, opts.userID)
	if err != nil {
		return fmt.Errorf("connect %s: %w", opts.addr, err)
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), callTimeout)
	defer cancel()

	result, err := call(ctx, client)
	if err != nil {
		if code := grpcclient.DenialCode(err); code != "" {
			return fmt.Errorf("%s: %w", code, err)
		}
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
