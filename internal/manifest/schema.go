package manifest

import (
	"github.com/danmuck/stellartoml/internal/strkey"
	"github.com/danmuck/stellartoml/internal/textvalue"
)

// Field tables. Keys are listed canonical first, then accepted aliases.

var documentationSchema = schema[Documentation]{
	stringField(func(d *Documentation) **string { return &d.OrgName }, "org_name", "ORG_NAME"),
	stringField(func(d *Documentation) **string { return &d.OrgDBA }, "org_dba", "ORG_DBA"),
	textField(func(d *Documentation) **textvalue.URI { return &d.OrgURL }, "org_url", "ORG_URL"),
	textField(func(d *Documentation) **textvalue.URI { return &d.OrgLogo }, "org_logo", "ORG_LOGO"),
	stringField(func(d *Documentation) **string { return &d.OrgDescription }, "org_description", "ORG_DESCRIPTION"),
	stringField(func(d *Documentation) **string { return &d.OrgPhysicalAddress }, "org_physical_address", "ORG_PHYSICAL_ADDRESS"),
	textField(func(d *Documentation) **textvalue.URI { return &d.OrgPhysicalAddressAttestation },
		"org_physical_address_attestation", "ORG_PHYSICAL_ADDRESS_ATTESTATION"),
	stringField(func(d *Documentation) **string { return &d.OrgPhoneNumber }, "org_phone_number", "ORG_PHONE_NUMBER"),
	// ORG_PHONE_NUMBER_ATTESTIATION is a misspelling found in published documents.
	textField(func(d *Documentation) **textvalue.URI { return &d.OrgPhoneNumberAttestation },
		"org_phone_number_attestation", "ORG_PHONE_NUMBER_ATTESTATION", "ORG_PHONE_NUMBER_ATTESTIATION"),
	stringField(func(d *Documentation) **string { return &d.OrgKeybase }, "org_keybase", "ORG_KEYBASE"),
	stringField(func(d *Documentation) **string { return &d.OrgTwitter }, "org_twitter", "ORG_TWITTER"),
	stringField(func(d *Documentation) **string { return &d.OrgGithub }, "org_github", "ORG_GITHUB"),
	stringField(func(d *Documentation) **string { return &d.OrgOfficialEmail }, "org_official_email", "ORG_OFFICIAL_EMAIL"),
	stringField(func(d *Documentation) **string { return &d.OrgLicensingAuthority }, "org_licensing_authority", "ORG_LICENSING_AUTHORITY"),
	stringField(func(d *Documentation) **string { return &d.OrgLicenseType }, "org_license_type", "ORG_LICENSE_TYPE"),
	stringField(func(d *Documentation) **string { return &d.OrgLicenseNumber }, "org_license_number", "ORG_LICENSE_NUMBER"),
}

var pointOfContactSchema = schema[PointOfContact]{
	stringField(func(p *PointOfContact) **string { return &p.Name }, "name", "NAME"),
	stringField(func(p *PointOfContact) **string { return &p.Email }, "email", "EMAIL"),
	stringField(func(p *PointOfContact) **string { return &p.Keybase }, "keybase", "KEYBASE"),
	stringField(func(p *PointOfContact) **string { return &p.Telegram }, "telegram", "TELEGRAM"),
	stringField(func(p *PointOfContact) **string { return &p.Twitter }, "twitter", "TWITTER"),
	stringField(func(p *PointOfContact) **string { return &p.Github }, "github", "GITHUB"),
	stringField(func(p *PointOfContact) **string { return &p.IDPhotoHash }, "id_photo_hash", "ID_PHOTO_HASH"),
	stringField(func(p *PointOfContact) **string { return &p.VerificationPhotoHash }, "verification_photo_hash", "VERIFICATION_PHOTO_HASH"),
}

var currencySchema = schema[Currency]{
	stringField(func(c *Currency) **string { return &c.Code }, "code", "CODE"),
	stringField(func(c *Currency) **string { return &c.CodeTemplate }, "code_template", "CODE_TEMPLATE"),
	textField(func(c *Currency) **strkey.PublicKey { return &c.Issuer }, "issuer", "ISSUER"),
	textField(func(c *Currency) **CurrencyStatus { return &c.Status }, "status", "STATUS"),
	uint8Field(func(c *Currency) **uint8 { return &c.DisplayDecimals }, "display_decimals", "DISPLAY_DECIMALS"),
	stringField(func(c *Currency) **string { return &c.Name }, "name", "NAME"),
	stringField(func(c *Currency) **string { return &c.Description }, "desc", "DESC"),
	stringField(func(c *Currency) **string { return &c.Conditions }, "conditions", "CONDITIONS"),
	stringField(func(c *Currency) **string { return &c.Image }, "image", "IMAGE"),
	intField(func(c *Currency) **int64 { return &c.FixedNumber }, "fixed_number", "FIXED_NUMBER"),
	intField(func(c *Currency) **int64 { return &c.MaxNumber }, "max_number", "MAX_NUMBER"),
	boolField(func(c *Currency) **bool { return &c.IsUnlimited }, "is_unlimited", "IS_UNLIMITED"),
	boolField(func(c *Currency) **bool { return &c.IsAssetAnchored }, "is_asset_anchored", "IS_ASSET_ANCHORED"),
	textField(func(c *Currency) **AnchoredCurrencyType { return &c.AnchorAssetType }, "anchor_asset_type", "ANCHOR_ASSET_TYPE"),
	stringField(func(c *Currency) **string { return &c.AnchorAsset }, "anchor_asset", "ANCHOR_ASSET"),
	stringField(func(c *Currency) **string { return &c.RedemptionInstructions }, "redemption_instructions", "REDEMPTION_INSTRUCTIONS"),
	stringsField(func(c *Currency) *[]string { return &c.CollateralAddresses }, "collateral_addresses", "COLLATERAL_ADDRESSES"),
	stringsField(func(c *Currency) *[]string { return &c.CollateralAddressMessages },
		"collateral_address_messages", "COLLATERAL_ADDRESS_MESSAGES"),
	stringsField(func(c *Currency) *[]string { return &c.CollateralAddressSignatures },
		"collateral_address_signatures", "COLLATERAL_ADDRESS_SIGNATURES"),
	boolField(func(c *Currency) **bool { return &c.Regulated }, "regulated", "REGULATED"),
	textField(func(c *Currency) **textvalue.URI { return &c.ApprovalServer }, "approval_server", "APPROVAL_SERVER"),
	stringField(func(c *Currency) **string { return &c.ApprovalCriteria }, "approval_criteria", "APPROVAL_CRITERIA"),
}

var validatorSchema = schema[Validator]{
	stringField(func(v *Validator) **string { return &v.Alias }, "alias", "ALIAS"),
	stringField(func(v *Validator) **string { return &v.DisplayName }, "display_name", "DISPLAY_NAME"),
	textField(func(v *Validator) **strkey.PublicKey { return &v.PublicKey }, "public_key", "PUBLIC_KEY"),
	stringField(func(v *Validator) **string { return &v.Host }, "host", "HOST"),
	textField(func(v *Validator) **textvalue.URI { return &v.History }, "history", "HISTORY"),
}

var manifestSchema = schema[Manifest]{
	stringField(func(m *Manifest) **string { return &m.Version }, "version", "VERSION"),
	stringField(func(m *Manifest) **string { return &m.NetworkPassphrase }, "network_passphrase", "NETWORK_PASSPHRASE"),
	textField(func(m *Manifest) **textvalue.URI { return &m.FederationServer }, "federation_server", "FEDERATION_SERVER"),
	textField(func(m *Manifest) **textvalue.URI { return &m.AuthServer }, "auth_server", "AUTH_SERVER"),
	textField(func(m *Manifest) **textvalue.URI { return &m.TransferServer }, "transfer_server", "TRANSFER_SERVER"),
	textField(func(m *Manifest) **textvalue.URI { return &m.TransferServerSep0024 }, "transfer_server_sep0024", "TRANSFER_SERVER_SEP0024"),
	textField(func(m *Manifest) **textvalue.URI { return &m.KYCServer }, "kyc_server", "KYC_SERVER"),
	textField(func(m *Manifest) **textvalue.URI { return &m.WebAuthEndpoint }, "web_auth_endpoint", "WEB_AUTH_ENDPOINT"),
	textField(func(m *Manifest) **strkey.PublicKey { return &m.SigningKey }, "signing_key", "SIGNING_KEY"),
	stringField(func(m *Manifest) **string { return &m.HorizonURL }, "horizon_url", "HORIZON_URL"),
	stringsField(func(m *Manifest) *[]string { return &m.Accounts }, "accounts", "ACCOUNTS"),
	stringField(func(m *Manifest) **string { return &m.URIRequestSigningKey }, "uri_request_signing_key", "URI_REQUEST_SIGNING_KEY"),
	tableField(func(m *Manifest) **Documentation { return &m.Documentation }, documentationSchema, "documentation", "DOCUMENTATION"),
	tablesField(func(m *Manifest) *[]PointOfContact { return &m.Principals }, pointOfContactSchema, "principals", "PRINCIPALS"),
	tablesField(func(m *Manifest) *[]Currency { return &m.Currencies }, currencySchema, "currencies", "CURRENCIES"),
	tablesField(func(m *Manifest) *[]Validator { return &m.Validators }, validatorSchema, "validators", "VALIDATORS"),
}

// Keys returns the accepted keys for each root field, in lookup order.
func Keys() [][]string {
	out := make([][]string, 0, len(manifestSchema))
	for _, f := range manifestSchema {
		out = append(out, append([]string(nil), f.keys...))
	}
	return out
}
