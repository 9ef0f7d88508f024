package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"catalyster/internal/api"
	"catalyster/internal/callback"
	"catalyster/internal/domain"
	"catalyster/internal/feed"
	"catalyster/internal/format"
	"catalyster/internal/infra"
	"catalyster/internal/payment"
	"catalyster/internal/services"
	"catalyster/internal/session"
)

const usage = `usage: catalyster <command> [flags]

commands:
  login          sign in and store the session
  signup         register a new account
  logout         clear the stored session
  whoami         show the signed-in user
  campaigns      list, show, create or manage campaigns
  donate         donate to a campaign (card, upi, netbanking, wallet, stripe)
  feed           browse active campaigns and toggle likes
  comments       list a campaign's comments
  follow         follow a user
  unfollow       unfollow a user
  notifications  list notifications
  withdrawals    list or request withdrawals
  bank-accounts  list or add payout accounts
`

type app struct {
	cfg     *infra.Config
	logger  infra.Logger
	store   *session.Store
	auth    *session.Manager
	svcs    *services.Services
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "catalyster").Logger()

	store := session.NewStore(cfg.SessionFile, &logger)
	client, err := api.NewClient(api.Options{
		BaseURL:        cfg.APIBaseURL,
		Logger:         &logger,
		TokenSource:    store,
		RequestTimeout: cfg.HTTPTimeout,
	})
	if err != nil {
		exitWithError(err)
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		auth:   session.NewManager(client, store),
		svcs:   services.New(client),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "login":
		err = a.login(ctx, args)
	case "signup":
		err = a.signup(ctx, args)
	case "logout":
		a.auth.Logout(ctx)
		fmt.Println("Signed out.")
	case "whoami":
		err = a.whoami(ctx)
	case "campaigns":
		err = a.campaigns(ctx, args)
	case "donate":
		err = a.donate(ctx, args)
	case "feed":
		err = a.feedCmd(ctx, args)
	case "comments":
		err = a.comments(ctx, args)
	case "follow":
		err = a.follow(ctx, args, true)
	case "unfollow":
		err = a.follow(ctx, args, false)
	case "notifications":
		err = a.notifications(ctx, args)
	case "withdrawals":
		err = a.withdrawals(ctx, args)
	case "bank-accounts":
		err = a.bankAccounts(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		exitWithError(err)
	}
}

func (a *app) requireUser() (*domain.User, error) {
	user := a.store.User()
	if user == nil {
		return nil, errors.New("not signed in; run `catalyster login` first")
	}
	if a.store.TokenExpired() {
		return nil, errors.New("session expired; run `catalyster login` again")
	}
	return user, nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	res := a.auth.Login(ctx, strings.TrimSpace(*username), *password)
	if !res.Success {
		return errors.New(res.Error)
	}
	fmt.Printf("Signed in as %s (%s)\n", res.User.Username, res.User.Email)
	return nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	username := fs.String("username", "", "desired username (3-30 characters)")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (at least 8 characters)")
	confirm := fs.String("confirm", "", "password confirmation")
	fs.Parse(args)

	res := a.auth.Signup(ctx, session.SignupParams{
		Username:        strings.TrimSpace(*username),
		Email:           strings.TrimSpace(*email),
		Password:        *password,
		ConfirmPassword: *confirm,
	})
	if !res.Success {
		return errors.New(res.Error)
	}
	fmt.Println("Account created. Sign in with `catalyster login`.")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}
	if err := a.auth.Validate(ctx); err != nil {
		if api.IsUnauthorized(err) {
			return errors.New("session is no longer valid; run `catalyster login` again")
		}
		a.logger.Warn().Err(err).Msg("session validation unreachable, showing stored identity")
	}
	fmt.Printf("%s <%s> role=%s\n", user.Username, user.Email, user.Role)
	if exp, ok := a.store.TokenExpiry(); ok {
		fmt.Printf("session expires %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *app) campaigns(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: catalyster campaigns <list|show|create|publish|pause|resume> [flags]")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return a.campaignList(ctx, rest)
	case "show":
		return a.campaignShow(ctx, rest)
	case "create":
		return a.campaignCreate(ctx, rest)
	case "publish", "pause", "resume":
		return a.campaignLifecycle(ctx, sub, rest)
	default:
		return fmt.Errorf("unknown campaigns subcommand %q", sub)
	}
}

func (a *app) campaignList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("campaigns list", flag.ExitOnError)
	page := fs.Int("page", 0, "page number")
	size := fs.Int("size", 20, "page size")
	category := fs.String("category", "", "filter by category")
	sort := fs.String("sort", "", "sort order")
	fs.Parse(args)

	result, err := a.svcs.Campaigns.Active(ctx, services.ActiveParams{
		Page:     services.Page{Page: *page, Size: *size},
		Category: *category,
		Sort:     *sort,
	})
	if err != nil {
		return err
	}
	for _, c := range result.Content {
		printCampaignRow(c)
	}
	fmt.Printf("page %d/%d (%d campaigns)\n", result.Number+1, result.TotalPages, result.TotalElements)
	return nil
}

func (a *app) campaignShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("campaigns show", flag.ExitOnError)
	id := fs.String("id", "", "campaign ID")
	fs.Parse(args)
	if *id == "" {
		return errors.New("-id is required")
	}

	viewerID := ""
	if u := a.store.User(); u != nil {
		viewerID = u.ID
	}
	c, err := a.svcs.Campaigns.ByID(ctx, *id, viewerID)
	if err != nil {
		return err
	}
	pct := format.FundingPercentage(c.CurrentAmount, c.GoalAmount)
	fmt.Printf("%s\n%s\n\n", c.Title, c.Description)
	fmt.Printf("raised %s of %s (%d%%), %d donors, %s likes\n",
		format.Currency(c.CurrentAmount, c.Currency),
		format.Currency(c.GoalAmount, c.Currency),
		pct, c.DonorCount, format.Compact(int64(c.LikeCount)))
	fmt.Printf("status %s, %d days left, by %s\n", c.Status, format.DaysLeft(c.EndDate, time.Now()), c.CreatorName)
	for _, tier := range c.RewardTiers {
		fmt.Printf("  reward: %s from %s — %s\n", tier.Title, format.Currency(tier.MinAmount, c.Currency), tier.Description)
	}
	return nil
}

func (a *app) campaignCreate(ctx context.Context, args []string) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("campaigns create", flag.ExitOnError)
	title := fs.String("title", "", "campaign title")
	description := fs.String("description", "", "campaign description")
	category := fs.String("category", "", "category")
	goal := fs.Float64("goal", 0, "goal amount")
	currency := fs.String("currency", "INR", "currency code")
	endDate := fs.String("end", "", "end date (YYYY-MM-DD)")
	image := fs.String("image", "", "cover image URL")
	fs.Parse(args)

	if *title == "" || *goal <= 0 || *endDate == "" {
		return errors.New("-title, -goal and -end are required")
	}
	c, err := a.svcs.Campaigns.Create(ctx, services.CreateParams{
		Title:       *title,
		Description: *description,
		Category:    *category,
		GoalAmount:  *goal,
		Currency:    *currency,
		EndDate:     *endDate,
		ImageURL:    *image,
		CreatorID:   user.ID,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created draft campaign %s (%s). Publish with `catalyster campaigns publish -id %s`.\n", c.Title, c.ID, c.ID)
	return nil
}

func (a *app) campaignLifecycle(ctx context.Context, action string, args []string) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("campaigns "+action, flag.ExitOnError)
	id := fs.String("id", "", "campaign ID")
	fs.Parse(args)
	if *id == "" {
		return errors.New("-id is required")
	}

	var c *domain.Campaign
	switch action {
	case "publish":
		c, err = a.svcs.Campaigns.Publish(ctx, *id, user.ID)
	case "pause":
		c, err = a.svcs.Campaigns.Pause(ctx, *id, user.ID)
	case "resume":
		c, err = a.svcs.Campaigns.Resume(ctx, *id, user.ID)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Campaign %s is now %s\n", c.Title, c.Status)
	return nil
}

func (a *app) donate(ctx context.Context, args []string) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("donate", flag.ExitOnError)
	campaignID := fs.String("campaign", "", "campaign ID")
	amount := fs.Float64("amount", 0, "donation amount")
	method := fs.String("method", "", "payment method: card, upi, netbanking, wallet, stripe")
	anonymous := fs.Bool("anonymous", false, "hide your name from the campaign page")
	note := fs.String("message", "", "message to the creator")

	cardNumber := fs.String("card-number", "", "card number")
	cardHolder := fs.String("card-holder", "", "name on the card")
	cardMonth := fs.String("card-month", "", "expiry month (MM)")
	cardYear := fs.String("card-year", "", "expiry year (YY)")
	cardCVV := fs.String("card-cvv", "", "card CVV")
	bank := fs.String("bank", "", "net banking bank code")
	wallet := fs.String("wallet", "", "wallet type")
	fs.Parse(args)

	if *campaignID == "" {
		return errors.New("-campaign is required")
	}

	flow := payment.NewFlow(payment.Options{
		Payments:    a.svcs.Payments,
		Logger:      &a.logger,
		CampaignID:  *campaignID,
		DonorID:     user.ID,
		IsAnonymous: *anonymous,
		Message:     *note,
	})
	if err := flow.SetAmount(*amount); err != nil {
		return err
	}

	switch strings.ToLower(*method) {
	case "card":
		if err := flow.SelectMethod(domain.MethodCard); err != nil {
			return err
		}
		res, err := flow.PayCard(ctx, payment.Card{
			Number:      *cardNumber,
			Holder:      *cardHolder,
			ExpiryMonth: *cardMonth,
			ExpiryYear:  *cardYear,
			CVV:         *cardCVV,
		})
		if err != nil {
			return donationFailure(flow, err)
		}
		fmt.Printf("Payment settled. Donation %s recorded. Thank you!\n", res.DonationID)

	case "upi":
		if err := flow.SelectMethod(domain.MethodUPI); err != nil {
			return err
		}
		order, err := flow.StartUPI(ctx)
		if err != nil {
			return donationFailure(flow, err)
		}
		fmt.Printf("Pay with any UPI app:\n  %s\n", order.UPILink)
		if order.QRCodeImage != "" {
			fmt.Println("  (QR code available; open the link above if you cannot scan)")
		}
		fmt.Println("Waiting for the payment to complete...")
		if err := flow.AwaitUPI(ctx, order.TransactionID); err != nil {
			return donationFailure(flow, err)
		}
		fmt.Printf("Payment settled. Donation %s recorded. Thank you!\n", flow.Result().DonationID)

	case "netbanking":
		if *bank == "" {
			return a.printBanks(ctx)
		}
		if err := flow.SelectMethod(domain.MethodNetBanking); err != nil {
			return err
		}
		sess, err := flow.StartNetBanking(ctx, strings.ToUpper(*bank))
		if err != nil {
			return donationFailure(flow, err)
		}
		return a.awaitRedirect(ctx, sess.RedirectURL)

	case "wallet":
		if *wallet == "" {
			return a.printWallets(ctx)
		}
		if err := flow.SelectMethod(domain.MethodWallet); err != nil {
			return err
		}
		sess, err := flow.StartWallet(ctx, strings.ToUpper(*wallet))
		if err != nil {
			return donationFailure(flow, err)
		}
		return a.awaitRedirect(ctx, sess.RedirectURL)

	case "stripe":
		if err := flow.SelectMethod(domain.MethodStripe); err != nil {
			return err
		}
		sess, err := flow.StartStripe(ctx)
		if err != nil {
			return donationFailure(flow, err)
		}
		target := sess.CheckoutURL
		if target == "" {
			target = sess.RedirectURL
		}
		return a.awaitRedirect(ctx, target)

	default:
		return errors.New("-method must be one of card, upi, netbanking, wallet, stripe")
	}
	return nil
}

func donationFailure(flow *payment.Flow, err error) error {
	if msg := flow.Failure(); msg != "" {
		return fmt.Errorf("%s (you can retry with a different method)", msg)
	}
	return err
}

// awaitRedirect prints the hosted payment URL and runs the loopback
// listener the provider redirects back to.
func (a *app) awaitRedirect(ctx context.Context, target string) error {
	srv := callback.New(a.cfg.CallbackPort, a.svcs.Payments, a.logger)
	go func() {
		if err := srv.Start(); err != nil {
			a.logger.Error().Err(err).Msg("callback listener failed")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Open this URL in your browser to complete the payment:\n  %s\n", target)
	fmt.Println("Waiting for the payment to complete (ctrl-c to stop waiting)...")

	out, err := srv.Wait(ctx)
	if err != nil {
		return err
	}
	switch {
	case out.Cancelled:
		fmt.Println("Payment cancelled. No money was taken.")
	case out.Err != nil:
		return fmt.Errorf("could not confirm the payment, check your donation history: %w", out.Err)
	default:
		fmt.Printf("Payment %s. Donation %s recorded. Thank you!\n", out.Result.Status, out.Result.DonationID)
	}
	return nil
}

func (a *app) printBanks(ctx context.Context) error {
	banks, err := a.svcs.Payments.SupportedBanks(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Pass -bank with one of:")
	for _, b := range banks {
		fmt.Printf("  %-10s %s\n", b.Code, b.Name)
	}
	return nil
}

func (a *app) printWallets(ctx context.Context) error {
	wallets, err := a.svcs.Payments.SupportedWallets(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Pass -wallet with one of:")
	for _, w := range wallets {
		fmt.Printf("  %-12s %s\n", w.Type, w.Name)
	}
	return nil
}

func (a *app) feedCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("feed", flag.ExitOnError)
	page := fs.Int("page", 0, "page number")
	size := fs.Int("size", 20, "page size")
	category := fs.String("category", "", "filter by category")
	like := fs.String("like", "", "toggle a like on this campaign ID")
	fs.Parse(args)

	viewerID := ""
	if u := a.store.User(); u != nil {
		viewerID = u.ID
	}
	f := feed.New(feed.Options{
		Campaigns:    a.svcs.Campaigns,
		Logger:       &a.logger,
		ViewerID:     viewerID,
		DemoFallback: a.cfg.DemoFallback,
	})
	if err := f.Load(ctx, services.ActiveParams{
		Page:     services.Page{Page: *page, Size: *size},
		Category: *category,
	}); err != nil {
		return err
	}

	if *like != "" {
		if viewerID == "" {
			return errors.New("sign in to like campaigns")
		}
		if err := f.ToggleLike(ctx, *like); err != nil {
			return err
		}
	}

	if f.Demo() {
		fmt.Println("(backend unreachable — showing sample campaigns)")
	}
	for _, c := range f.Items() {
		printCampaignRow(c)
	}
	return nil
}

func (a *app) comments(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("comments", flag.ExitOnError)
	campaignID := fs.String("campaign", "", "campaign ID")
	page := fs.Int("page", 0, "page number")
	fs.Parse(args)
	if *campaignID == "" {
		return errors.New("-campaign is required")
	}

	result, err := a.svcs.Comments.ByCampaign(ctx, *campaignID, services.Page{Page: *page})
	if err != nil {
		return err
	}
	for _, c := range result.Content {
		indent := ""
		if c.ParentCommentID != "" {
			indent = "    "
		}
		fmt.Printf("%s%s: %s (%s likes)\n", indent, c.AuthorName, c.Content, format.Compact(int64(c.LikeCount)))
	}
	return nil
}

func (a *app) follow(ctx context.Context, args []string, follow bool) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("follow", flag.ExitOnError)
	target := fs.String("user", "", "user ID to follow or unfollow")
	fs.Parse(args)
	if *target == "" {
		return errors.New("-user is required")
	}

	if !follow {
		if err := a.svcs.Follows.Unfollow(ctx, user.ID, *target); err != nil {
			return err
		}
		fmt.Println("Unfollowed.")
		return nil
	}
	edge, err := a.svcs.Follows.Follow(ctx, user.ID, *target)
	if err != nil {
		return err
	}
	if edge.State == domain.FollowPending {
		fmt.Println("Follow request sent; the profile is private and must approve it.")
	} else {
		fmt.Println("Following.")
	}
	return nil
}

func (a *app) notifications(ctx context.Context, args []string) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("notifications", flag.ExitOnError)
	page := fs.Int("page", 0, "page number")
	markAll := fs.Bool("mark-read", false, "mark everything as read")
	fs.Parse(args)

	if *markAll {
		if err := a.svcs.Notifications.MarkAllRead(ctx, user.ID); err != nil {
			return err
		}
	}
	result, err := a.svcs.Notifications.ForUser(ctx, user.ID, services.Page{Page: *page})
	if err != nil {
		return err
	}
	for _, n := range result.Content {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s %s %s\n", marker, n.CreatedAt.Local().Format("Jan 02 15:04"), n.Message)
	}
	return nil
}

func (a *app) withdrawals(ctx context.Context, args []string) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("withdrawals", flag.ExitOnError)
	campaignID := fs.String("campaign", "", "request a withdrawal from this campaign")
	accountID := fs.String("account", "", "payout bank account ID")
	amount := fs.Float64("amount", 0, "withdrawal amount")
	notes := fs.String("notes", "", "notes for the reviewer")
	fs.Parse(args)

	if *campaignID != "" {
		if *accountID == "" || *amount <= 0 {
			return errors.New("-account and a positive -amount are required to request a withdrawal")
		}
		w, err := a.svcs.Withdrawals.Request(ctx, services.WithdrawalParams{
			CampaignID:    *campaignID,
			RequesterID:   user.ID,
			BankAccountID: *accountID,
			Amount:        *amount,
			Notes:         *notes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Withdrawal %s requested (%s), status %s\n", w.ID, format.Currency(w.Amount, "INR"), w.Status)
		return nil
	}

	result, err := a.svcs.Withdrawals.ByUser(ctx, user.ID, services.Page{})
	if err != nil {
		return err
	}
	for _, w := range result.Content {
		fmt.Printf("%s  %-10s %s  campaign %s\n", w.CreatedAt.Local().Format("2006-01-02"), w.Status, format.Currency(w.Amount, "INR"), w.CampaignID)
	}
	return nil
}

func (a *app) bankAccounts(ctx context.Context, args []string) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("bank-accounts", flag.ExitOnError)
	add := fs.Bool("add", false, "add a new payout account")
	name := fs.String("name", "", "account holder name")
	number := fs.String("number", "", "account number")
	ifsc := fs.String("ifsc", "", "IFSC code")
	bankName := fs.String("bank", "", "bank name")
	primary := fs.Bool("primary", false, "make this the primary payout account")
	fs.Parse(args)

	if *add {
		if *name == "" || *number == "" || *ifsc == "" {
			return errors.New("-name, -number and -ifsc are required")
		}
		acct, err := a.svcs.BankAccounts.Add(ctx, services.BankAccountParams{
			ProfileID:     user.ID,
			AccountName:   *name,
			AccountNumber: *number,
			IFSCCode:      *ifsc,
			BankName:      *bankName,
			Primary:       *primary,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added account %s at %s\n", acct.ID, acct.BankName)
		return nil
	}

	accounts, err := a.svcs.BankAccounts.ForProfile(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, acct := range accounts {
		flags := ""
		if acct.Primary {
			flags += " primary"
		}
		if acct.Verified {
			flags += " verified"
		}
		fmt.Printf("%s  %s ...%s  %s%s\n", acct.ID, acct.BankName, tail(acct.AccountNumber, 4), acct.IFSCCode, flags)
	}
	return nil
}

func printCampaignRow(c domain.Campaign) {
	pct := format.FundingPercentage(c.CurrentAmount, c.GoalAmount)
	fmt.Printf("%-38s %3d%%  %s raised  %s likes  %s\n",
		format.Truncate(c.Title, 36), pct,
		format.Currency(c.CurrentAmount, c.Currency),
		format.Compact(int64(c.LikeCount)), c.ID)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
