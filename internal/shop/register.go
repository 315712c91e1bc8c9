// Merchant registration: one account plus one storefront, written in two
// non-atomic steps with no rollback. The repair engine exists because of
// this file.
package shop

import (
	"context"
	"math/rand"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/dukaforge/storefront/internal/mirror"
	"github.com/dukaforge/storefront/pkg/types"
)

// OwnerSignup is the merchant registration form.
type OwnerSignup struct {
	FullName  string
	Email     string
	Password  string
	StoreName string
	WhatsApp  string
	Specialty string // both, sweet, savory, lunch
}

const storeCodeLength = 6

// codeAlphabet spells the shareable store codes: uppercase alphanumerics.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newStoreCode generates a random candidate code.
func newStoreCode() string {
	var b strings.Builder
	for i := 0; i < storeCodeLength; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// uniqueStoreCode generates a code not already taken, compared
// case-insensitively against the existing storefronts.
func uniqueStoreCode(stores []types.Storefront) string {
	taken := make(map[string]bool, len(stores))
	for _, s := range stores {
		if s.Code != "" {
			taken[types.NormalizeStoreCode(s.Code)] = true
		}
	}
	code := newStoreCode()
	for taken[code] {
		code = newStoreCode()
	}
	return code
}

// slugify turns a store name into a URL slug: lower-cased, spaces to
// hyphens, everything else non-alphanumeric dropped.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}

// validateOwnerSignup rejects a signup before any write.
func validateOwnerSignup(in OwnerSignup) error {
	if strings.TrimSpace(in.FullName) == "" {
		return types.ErrNameRequired
	}
	if !govalidator.IsEmail(strings.TrimSpace(in.Email)) {
		return types.ErrInvalidEmail
	}
	if len(strings.TrimSpace(in.Password)) < 4 {
		return types.ErrPasswordTooShort
	}
	if strings.TrimSpace(in.StoreName) == "" {
		return types.ErrStoreNameRequired
	}
	if strings.TrimSpace(in.WhatsApp) == "" {
		return types.ErrContactRequired
	}
	return nil
}

// RegisterOwner creates a merchant account and its storefront. The two
// collection writes are independent; if the second fails the repair engine
// reconnects the halves at read time. The contact-capture write to the
// mirror is awaited but its failure only logged, and the collection pushes
// run in the background.
func (s *Service) RegisterOwner(ctx context.Context, in OwnerSignup) (*types.Account, *types.Storefront, error) {
	if err := validateOwnerSignup(in); err != nil {
		return nil, nil, err
	}

	email := types.NormalizeEmail(in.Email)
	accounts := s.repo.Accounts()
	for _, a := range accounts {
		if types.NormalizeEmail(a.Email) == email {
			return nil, nil, types.ErrEmailTaken
		}
	}

	stores := s.repo.Storefronts()
	account := types.Account{
		ID:       newID(),
		Name:     strings.TrimSpace(in.FullName),
		Email:    email,
		Password: strings.TrimSpace(in.Password),
	}
	storefront := types.Storefront{
		ID:              newID(),
		OwnerID:         account.ID,
		Name:            strings.TrimSpace(in.StoreName),
		Slug:            slugify(in.StoreName),
		Code:            uniqueStoreCode(stores),
		Logo:            "https://picsum.photos/200",
		Banner:          "https://picsum.photos/800/200",
		Description:     "Welcome to " + strings.TrimSpace(in.StoreName) + "!",
		WhatsApp:        strings.TrimSpace(in.WhatsApp),
		DeliveryMode:    types.DeliveryBoth,
		DeliveryFee:     5.0,
		DiscountEnabled: true,
		DiscountPercent: 10,
		Hours:           types.OperatingHours{Open: "08:00", Close: "22:00"},
	}
	account.StoreID = storefront.ID

	accounts = append(accounts, account)
	stores = append(stores, storefront)
	s.repo.SaveAccounts(accounts)
	s.repo.SaveStorefronts(stores)

	s.pushAsync(types.AccountsCollection, asAny(accounts))
	s.pushAsync(types.StorefrontsCollection, asAny(stores))

	if err := s.mirror.RegisterOwner(ctx, mirror.OwnerRegistration{
		Email:     email,
		Password:  account.Password,
		StoreName: storefront.Name,
		WhatsApp:  storefront.WhatsApp,
		Specialty: in.Specialty,
		FullName:  account.Name,
	}); err != nil {
		s.log.Warn(err.Error())
	}

	s.repo.SetCurrentAccount(&account)
	return &account, &storefront, nil
}
