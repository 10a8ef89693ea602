package manifest

import (
	"github.com/danmuck/stellartoml/internal/strkey"
	"github.com/danmuck/stellartoml/internal/textvalue"
)

// Manifest is the typed form of an organization's stellar.toml.
// Values are built in one step by Bind and are not mutated afterwards.
type Manifest struct {
	// Version of SEP-1 the document adheres to.
	Version *string `json:"version,omitempty" yaml:"version,omitempty"`
	// NetworkPassphrase of the network this infrastructure operates on.
	NetworkPassphrase *string `json:"network_passphrase,omitempty" yaml:"network_passphrase,omitempty"`

	// FederationServer resolves stellar addresses (SEP-2).
	FederationServer *textvalue.URI `json:"federation_server,omitempty" yaml:"federation_server,omitempty"`
	// AuthServer is the SEP-3 compliance endpoint.
	AuthServer *textvalue.URI `json:"auth_server,omitempty" yaml:"auth_server,omitempty"`
	// TransferServer is the SEP-6 deposit/withdrawal server.
	TransferServer *textvalue.URI `json:"transfer_server,omitempty" yaml:"transfer_server,omitempty"`
	// TransferServerSep0024 is the SEP-24 interactive deposit/withdrawal server.
	TransferServerSep0024 *textvalue.URI `json:"transfer_server_sep0024,omitempty" yaml:"transfer_server_sep0024,omitempty"`
	// KYCServer is the SEP-12 customer info server.
	KYCServer *textvalue.URI `json:"kyc_server,omitempty" yaml:"kyc_server,omitempty"`
	// WebAuthEndpoint is the SEP-10 web authentication endpoint.
	WebAuthEndpoint *textvalue.URI `json:"web_auth_endpoint,omitempty" yaml:"web_auth_endpoint,omitempty"`

	// SigningKey is used for SEP-3 compliance and SEP-10 authentication.
	SigningKey *strkey.PublicKey `json:"signing_key,omitempty" yaml:"signing_key,omitempty"`
	// HorizonURL is the public Horizon instance, if any. Kept as text.
	HorizonURL *string `json:"horizon_url,omitempty" yaml:"horizon_url,omitempty"`
	// Accounts controlled by this domain.
	Accounts []string `json:"accounts" yaml:"accounts"`
	// URIRequestSigningKey is used for SEP-7 delegated signing.
	URIRequestSigningKey *string `json:"uri_request_signing_key,omitempty" yaml:"uri_request_signing_key,omitempty"`

	Documentation *Documentation   `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Principals    []PointOfContact `json:"principals" yaml:"principals"`
	Currencies    []Currency       `json:"currencies" yaml:"currencies"`
	Validators    []Validator      `json:"validators" yaml:"validators"`

	// Skipped lists sequence elements dropped under PolicySkip.
	Skipped []*FieldError `json:"-" yaml:"-"`
}

// Documentation describes the organization.
type Documentation struct {
	OrgName            *string        `json:"org_name,omitempty" yaml:"org_name,omitempty"`
	OrgDBA             *string        `json:"org_dba,omitempty" yaml:"org_dba,omitempty"`
	OrgURL             *textvalue.URI `json:"org_url,omitempty" yaml:"org_url,omitempty"`
	OrgLogo            *textvalue.URI `json:"org_logo,omitempty" yaml:"org_logo,omitempty"`
	OrgDescription     *string        `json:"org_description,omitempty" yaml:"org_description,omitempty"`
	OrgPhysicalAddress *string        `json:"org_physical_address,omitempty" yaml:"org_physical_address,omitempty"`
	// OrgPhysicalAddressAttestation points at an official third-party document
	// listing the organization at OrgPhysicalAddress.
	OrgPhysicalAddressAttestation *textvalue.URI `json:"org_physical_address_attestation,omitempty" yaml:"org_physical_address_attestation,omitempty"`
	// OrgPhoneNumber in E.164 format.
	OrgPhoneNumber            *string        `json:"org_phone_number,omitempty" yaml:"org_phone_number,omitempty"`
	OrgPhoneNumberAttestation *textvalue.URI `json:"org_phone_number_attestation,omitempty" yaml:"org_phone_number_attestation,omitempty"`
	OrgKeybase                *string        `json:"org_keybase,omitempty" yaml:"org_keybase,omitempty"`
	OrgTwitter                *string        `json:"org_twitter,omitempty" yaml:"org_twitter,omitempty"`
	OrgGithub                 *string        `json:"org_github,omitempty" yaml:"org_github,omitempty"`
	OrgOfficialEmail          *string        `json:"org_official_email,omitempty" yaml:"org_official_email,omitempty"`
	OrgLicensingAuthority     *string        `json:"org_licensing_authority,omitempty" yaml:"org_licensing_authority,omitempty"`
	OrgLicenseType            *string        `json:"org_license_type,omitempty" yaml:"org_license_type,omitempty"`
	OrgLicenseNumber          *string        `json:"org_license_number,omitempty" yaml:"org_license_number,omitempty"`
}

// PointOfContact identifies a principal of the organization.
type PointOfContact struct {
	Name     *string `json:"name,omitempty" yaml:"name,omitempty"`
	Email    *string `json:"email,omitempty" yaml:"email,omitempty"`
	Keybase  *string `json:"keybase,omitempty" yaml:"keybase,omitempty"`
	Telegram *string `json:"telegram,omitempty" yaml:"telegram,omitempty"`
	Twitter  *string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	Github   *string `json:"github,omitempty" yaml:"github,omitempty"`
	// IDPhotoHash is the SHA-256 of the principal's government-issued photo ID.
	IDPhotoHash *string `json:"id_photo_hash,omitempty" yaml:"id_photo_hash,omitempty"`
	// VerificationPhotoHash is the SHA-256 of the principal's verification photo.
	VerificationPhotoHash *string `json:"verification_photo_hash,omitempty" yaml:"verification_photo_hash,omitempty"`
}

// Currency describes one asset supported by the organization.
type Currency struct {
	Code *string `json:"code,omitempty" yaml:"code,omitempty"`
	// CodeTemplate uses '?' as a single character wildcard, e.g. CORN????????.
	CodeTemplate    *string               `json:"code_template,omitempty" yaml:"code_template,omitempty"`
	Issuer          *strkey.PublicKey     `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	Status          *CurrencyStatus       `json:"status,omitempty" yaml:"status,omitempty"`
	DisplayDecimals *uint8                `json:"display_decimals,omitempty" yaml:"display_decimals,omitempty"`
	Name            *string               `json:"name,omitempty" yaml:"name,omitempty"`
	Description     *string               `json:"desc,omitempty" yaml:"desc,omitempty"`
	Conditions      *string               `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Image           *string               `json:"image,omitempty" yaml:"image,omitempty"`
	FixedNumber     *int64                `json:"fixed_number,omitempty" yaml:"fixed_number,omitempty"`
	MaxNumber       *int64                `json:"max_number,omitempty" yaml:"max_number,omitempty"`
	IsUnlimited     *bool                 `json:"is_unlimited,omitempty" yaml:"is_unlimited,omitempty"`
	IsAssetAnchored *bool                 `json:"is_asset_anchored,omitempty" yaml:"is_asset_anchored,omitempty"`
	AnchorAssetType *AnchoredCurrencyType `json:"anchor_asset_type,omitempty" yaml:"anchor_asset_type,omitempty"`
	// AnchorAsset is the code or symbol the token is anchored to (USD, BTC, ...).
	AnchorAsset            *string `json:"anchor_asset,omitempty" yaml:"anchor_asset,omitempty"`
	RedemptionInstructions *string `json:"redemption_instructions,omitempty" yaml:"redemption_instructions,omitempty"`

	// CollateralAddresses, CollateralAddressMessages and
	// CollateralAddressSignatures are index aligned. Lengths are not checked.
	CollateralAddresses         []string `json:"collateral_addresses" yaml:"collateral_addresses"`
	CollateralAddressMessages   []string `json:"collateral_address_messages" yaml:"collateral_address_messages"`
	CollateralAddressSignatures []string `json:"collateral_address_signatures" yaml:"collateral_address_signatures"`

	// Regulated marks a SEP-8 regulated asset. Use IsRegulated for the
	// absent-means-false reading.
	Regulated        *bool          `json:"regulated,omitempty" yaml:"regulated,omitempty"`
	ApprovalServer   *textvalue.URI `json:"approval_server,omitempty" yaml:"approval_server,omitempty"`
	ApprovalCriteria *string        `json:"approval_criteria,omitempty" yaml:"approval_criteria,omitempty"`
}

// IsRegulated reports Regulated, treating absence as false.
func (c Currency) IsRegulated() bool {
	return c.Regulated != nil && *c.Regulated
}

// Validator describes one validator node run by the organization.
type Validator struct {
	// Alias is expected to match ^[a-z0-9-]{2,16}$. Not enforced.
	Alias       *string           `json:"alias,omitempty" yaml:"alias,omitempty"`
	DisplayName *string           `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	PublicKey   *strkey.PublicKey `json:"public_key,omitempty" yaml:"public_key,omitempty"`
	// Host is IP:port or domain:port.
	Host    *string        `json:"host,omitempty" yaml:"host,omitempty"`
	History *textvalue.URI `json:"history,omitempty" yaml:"history,omitempty"`
}
