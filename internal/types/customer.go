package types

import (
	"github.com/samber/lo"
	ierr "github.com/subsynth/subsynth/internal/errors"
)

// AcquisitionChannel is how a customer was acquired.
type AcquisitionChannel string

const (
	AcquisitionChannelOrganic  AcquisitionChannel = "organic"
	AcquisitionChannelPaid     AcquisitionChannel = "paid"
	AcquisitionChannelReferral AcquisitionChannel = "referral"
	AcquisitionChannelOther    AcquisitionChannel = "other"
)

func (c AcquisitionChannel) String() string {
	return string(c)
}

func (c AcquisitionChannel) Validate() error {
	allowed := []AcquisitionChannel{
		AcquisitionChannelOrganic,
		AcquisitionChannelPaid,
		AcquisitionChannelReferral,
		AcquisitionChannelOther,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid acquisition channel").
			WithHint("Invalid acquisition channel").
			WithReportableDetails(map[string]any{
				"acquisition_channel": c,
				"allowed_values":      allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CountryCode is the customer's billing country (ISO 3166-1 alpha-2).
type CountryCode string

const (
	CountryAR CountryCode = "AR"
	CountryMX CountryCode = "MX"
	CountryCL CountryCode = "CL"
	CountryUY CountryCode = "UY"
)

func (c CountryCode) String() string {
	return string(c)
}

func (c CountryCode) Validate() error {
	allowed := []CountryCode{
		CountryAR,
		CountryMX,
		CountryCL,
		CountryUY,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid country code").
			WithHint("Invalid country code").
			WithReportableDetails(map[string]any{
				"country":        c,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
