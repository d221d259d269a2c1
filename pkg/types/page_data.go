package types

type NavbarData struct {
	IsAuthenticated bool
	UserID          string
	UserEmail       string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Navbar NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

type HomePageData struct {
	BasePageData
	Notice   string
	Error    string
	Featured []*Maid
	Ads      []*Advertisement
}

type BrowsePageData struct {
	BasePageData
	Maids     []*Maid
	Shortlist map[string]bool
	Ads       []*Advertisement
}

type MaidDetailPageData struct {
	BasePageData
	Maid        *Maid
	Shortlisted bool
}

type ShortlistPageData struct {
	BasePageData
	Maids []*Maid
}

type LoginPageData struct {
	BasePageData
	Message string
	Error   string
	Email   string
	// Remember reflects the remember-email cookie used to prefill the form.
	Remember bool
}

type RegisterPageData struct {
	BasePageData
	GivenName   string
	FamilyName  string
	Email       string
	AgencyName  string
	LicenseNo   string
	Error       string
	FieldErrors map[string]string
}

type ConfirmRegisterPageData struct {
	BasePageData
	Email   string
	Error   string
	Message string
}

type EmployerListPageData struct {
	BasePageData
	Employers []*Employer
	Notice    string
	Error     string
}

type EmployerFormPageData struct {
	BasePageData
	Employer    *Employer
	MaskedNRIC  string
	Error       string
	FieldErrors map[string]string
}

type MaidListPageData struct {
	BasePageData
	Maids  []*Maid
	Notice string
	Error  string
}

type MaidFormPageData struct {
	BasePageData
	Maid           *Maid
	MaskedPassport string
	Error          string
	FieldErrors    map[string]string
}

type DocListPageData struct {
	BasePageData
	Docs   []*EmployerDoc
	Notice string
	Error  string
}

type DocDetailPageData struct {
	BasePageData
	Doc       *EmployerDoc
	Employer  *Employer
	Maid      *Maid
	Fee       *ServiceFee
	Agreement *ServiceAgreement
	Contract  *EmploymentContract
	Signature *DocSignature
	Notice    string
	Error     string
}

type SubDocFormPageData struct {
	BasePageData
	Doc         *EmployerDoc
	Fee         *ServiceFee
	Agreement   *ServiceAgreement
	Contract    *EmploymentContract
	Error       string
	FieldErrors map[string]string
}

type SignVerifyPageData struct {
	BasePageData
	Slug  string
	Role  SignerRole
	Error string
}

type SignCapturePageData struct {
	BasePageData
	Slug  string
	Role  SignerRole
	Error string
}

type SignCompletePageData struct {
	BasePageData
	Role SignerRole
}
