package enums

import "fmt"

// ProposalStatus maps to the proposal_status enum in Postgres.
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

func (p ProposalStatus) IsValid() bool {
	switch p {
	case ProposalStatusPending, ProposalStatusAccepted, ProposalStatusRejected:
		return true
	}
	return false
}

// ParseProposalStatus converts raw strings into ProposalStatus.
func ParseProposalStatus(value string) (ProposalStatus, error) {
	switch ProposalStatus(value) {
	case ProposalStatusPending:
		return ProposalStatusPending, nil
	case ProposalStatusAccepted:
		return ProposalStatusAccepted, nil
	case ProposalStatusRejected:
		return ProposalStatusRejected, nil
	}
	return "", fmt.Errorf("invalid proposal status %q", value)
}

// ContractKind classifies property requests by tenure.
type ContractKind string

const (
	ContractKindShortTerm ContractKind = "short_term"
	ContractKindLongTerm  ContractKind = "long_term"
	ContractKindPurchase  ContractKind = "purchase"
)

func (c ContractKind) IsValid() bool {
	switch c {
	case ContractKindShortTerm, ContractKindLongTerm, ContractKindPurchase:
		return true
	}
	return false
}
