// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AmountError GenericError
type AuthorisationError GenericError
type ExistsError GenericError
type FeePaymentError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type ScheduleError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised      = ExistsError("already initialised")
	AmountOverflow          = AmountError("amount overflow")
	AssetNotFound           = NotFoundError("asset not found")
	BelowMinimumDeposit     = AmountError("quantity below minimum deposit")
	CannotSplitVestingLock  = ScheduleError("cannot split a linear vesting lock")
	CertificateFileExists   = ExistsError("certificate file already exists")
	DatabaseIsNotSet        = ProcessError("database is not set")
	EmissionInMilliseconds  = ScheduleError("end emission must be in seconds")
	EmissionNotAfterCurrent = ScheduleError("end emission must be after current end emission")
	EmissionNotInFuture     = ScheduleError("end emission must be in the future")
	EmptyLockList           = AmountError("lock list is empty")
	ExceedsWithdrawable     = AmountError("amount exceeds withdrawable")
	FeeIncorrect            = FeePaymentError("payment does not equal fee")
	InsufficientBalance     = AmountError("insufficient balance")
	InsufficientShares      = AmountError("insufficient shares")
	InvalidAddress          = InvalidError("invalid address")
	InvalidCount            = InvalidError("invalid count")
	InvalidIPAddress        = InvalidError("invalid IP address")
	InvalidItem             = InvalidError("invalid item")
	InvalidLoggerChannel    = ProcessError("invalid logger channel")
	InvalidPortNumber       = InvalidError("invalid port number")
	InvalidPrivateKeyFile   = InvalidError("invalid private key file")
	InvalidPublicKeyFile    = InvalidError("invalid public key file")
	InvalidSignature        = AuthorisationError("invalid signature")
	InvalidTransferFee      = InvalidError("transfer fee must be less than 10000 basis points")
	KeyFileAlreadyExists    = ExistsError("key file already exists")
	LockNotFound            = NotFoundError("lock not found")
	MissingParameters       = InvalidError("missing parameters")
	NotAdministrator        = AuthorisationError("caller is not the administrator")
	NotAvailableInReadOnly  = ProcessError("not available in read-only mode")
	NotAvailableOnChain     = AuthorisationError("not available on this chain")
	NotConfigurationTable   = InvalidError("configuration did not return a table")
	NotInitialised          = NotFoundError("not initialised")
	NotLockOwner            = AuthorisationError("caller is not the lock owner")
	PoolDrained             = AmountError("pool balance is zero with shares outstanding")
	RateLimiting            = ProcessError("rate limiting")
	ReentrantCall           = ProcessError("re-entrant ledger call")
	RequestExpired          = AuthorisationError("request timestamp outside the accepted window")
	RequestReplayed         = AuthorisationError("request already processed")
	SameOwner               = AuthorisationError("new owner is the current owner")
	TransactionNotInUse     = ProcessError("transaction not in use")
	TruncatedRecord         = InvalidError("truncated record")
	UnknownRecordVersion    = InvalidError("unknown record version")
	ZeroAmount              = AmountError("amount is zero")
	ZeroReferralThreshold   = InvalidError("referral threshold is zero")
	ZeroShares              = AmountError("amount converts to zero shares")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AmountError) Error() string        { return string(e) }
func (e AuthorisationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e FeePaymentError) Error() string    { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e ScheduleError) Error() string      { return string(e) }

// determine the class of an error
func IsErrAmount(e error) bool        { _, ok := e.(AmountError); return ok }
func IsErrAuthorisation(e error) bool { _, ok := e.(AuthorisationError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrFeePayment(e error) bool    { _, ok := e.(FeePaymentError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
func IsErrSchedule(e error) bool      { _, ok := e.(ScheduleError); return ok }
