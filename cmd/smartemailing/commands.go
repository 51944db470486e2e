package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	smartemailing "github.com/lemonade-framework/smartemailing-go"
)

// checkListsConcurrency bounds the parallel requests of check-lists.
const checkListsConcurrency = 4

// errOperationFailed is returned after a failed response has been printed.
var errOperationFailed = errors.New("operation failed")

func (a *app) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResponse(a.client.Ping(cmd.Context()))
		},
	}
}

func (a *app) checkLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-login",
		Short: "Verify the API credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResponse(a.client.CheckLogin(cmd.Context()))
		},
	}
}

func (a *app) accountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Print the account id of the credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResponse(a.client.AccountID(cmd.Context()))
		},
	}
}

func (a *app) checkListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-list <list-id>",
		Short: "Check that a contact list exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResponse(a.client.CheckListIDString(cmd.Context(), args[0]))
		},
	}
}

// listCheck is one line of the check-lists report.
type listCheck struct {
	ID      string `json:"id"`
	Exists  bool   `json:"exists"`
	Message string `json:"message,omitempty"`
}

func (a *app) checkListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-lists <list-id>...",
		Short: "Check several contact lists in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.checkLists(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := a.printJSON(results); err != nil {
				return err
			}
			for _, r := range results {
				if !r.Exists {
					return errOperationFailed
				}
			}
			return nil
		},
	}
}

// checkLists checks every id concurrently. A transport failure cancels the
// remaining checks.
func (a *app) checkLists(ctx context.Context, ids []string) ([]listCheck, error) {
	results := make([]listCheck, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(checkListsConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			resp := a.client.CheckListIDString(ctx, id)
			if errors.Is(resp.Err(), smartemailing.ErrTransport) {
				return fmt.Errorf("check list %s: %w", id, resp.Err())
			}

			results[i] = listCheck{ID: id, Exists: resp.IsSuccess(), Message: resp.Message()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Debug("lists checked", zap.Int("count", len(ids)))
	return results, nil
}

func (a *app) listsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Print all contact lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := a.client.Lists(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(lists.All())
		},
	}
}

func (a *app) contactsCmd() *cobra.Command {
	var listID int

	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Print contacts, optionally of one list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				contacts *smartemailing.ContactCollection
				err      error
			)
			if cmd.Flags().Changed("list") {
				contacts, err = a.client.ContactsByList(cmd.Context(), listID)
			} else {
				contacts, err = a.client.Contacts(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.printJSON(contacts.All())
		},
	}
	cmd.Flags().IntVar(&listID, "list", 0, "Only contacts of this list")
	return cmd
}

func (a *app) contactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contact <contact-id>",
		Short: "Print one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contactID, err := parseID("contact id", args[0])
			if err != nil {
				return err
			}
			contacts, err := a.client.ContactDetail(cmd.Context(), contactID)
			if err != nil {
				return err
			}
			contact, ok := contacts.First()
			if !ok {
				return fmt.Errorf("%w: %d", smartemailing.ErrContactNotFound, contactID)
			}
			return a.printJSON(contact)
		},
	}
}

func addContactFieldFlags(cmd *cobra.Command, fields *smartemailing.ContactFields) {
	cmd.Flags().StringVar(&fields.Name, "name", "", "First name")
	cmd.Flags().StringVar(&fields.Surname, "surname", "", "Last name")
	cmd.Flags().StringVar(&fields.Language, "language", "", "Language, e.g. cs_CZ")
}

func (a *app) importCmd() *cobra.Command {
	var (
		listID int
		fields smartemailing.ContactFields
	)

	cmd := &cobra.Command{
		Use:   "import <email>",
		Short: "Create or update a contact and confirm it in a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResponse(a.client.ImportContact(cmd.Context(), args[0], listID, fields))
		},
	}
	cmd.Flags().IntVar(&listID, "list", 0, "Contact list id (required)")
	_ = cmd.MarkFlagRequired("list")
	addContactFieldFlags(cmd, &fields)
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	var fields smartemailing.ContactFields

	cmd := &cobra.Command{
		Use:   "update <contact-id>",
		Short: "Change the name, surname or language of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contactID, err := parseID("contact id", args[0])
			if err != nil {
				return err
			}
			return a.printResponse(a.client.UpdateContact(cmd.Context(), contactID, fields))
		},
	}
	addContactFieldFlags(cmd, &fields)
	return cmd
}

func (a *app) tagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <email> <tag>...",
		Short: "Add tags to a contact, creating it when needed",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResponse(a.client.AddTagsToContact(cmd.Context(), args[0], args[1:]))
		},
	}
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <contact-id>",
		Short: "Forget a contact (removes it from every list)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contactID, err := parseID("contact id", args[0])
			if err != nil {
				return err
			}
			return a.printResponse(a.client.RemoveFromList(cmd.Context(), contactID))
		},
	}
}

func (a *app) addToListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-to-list <contact-id> <list-id>",
		Short: "Confirm an existing contact in a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contactID, err := parseID("contact id", args[0])
			if err != nil {
				return err
			}
			listID, err := parseID("list id", args[1])
			if err != nil {
				return err
			}
			return a.printResponse(a.client.AddToList(cmd.Context(), contactID, listID))
		},
	}
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "schema [filter]",
		Short:       "Print the API constants, optionally filtered by name",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{offlineAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter string
			if len(args) == 1 {
				filter = args[0]
			}
			return a.printJSON(smartemailing.Schema(filter))
		},
	}
}

func (a *app) debugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Print a diagnostic report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printJSON(a.client.Debug(cmd.Context()))
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the effective settings to the config file",
		Long:        "init saves the settings resolved from the config file, environment and flags to --config. The file holds the API token and is readable by the owner only.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{offlineAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
			}
			if err := a.cfg.Save(a.configPath); err != nil {
				return err
			}

			a.logger.Info("config written", zap.String("path", a.configPath))
			return a.printJSON(map[string]string{"path": a.configPath})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func parseID(name, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return id, nil
}

// printResponse prints resp and reports a failed response as an error.
func (a *app) printResponse(resp *smartemailing.Response) error {
	if err := a.printJSON(resp); err != nil {
		return err
	}
	if resp.HasError() {
		return errOperationFailed
	}
	return nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.streams.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
