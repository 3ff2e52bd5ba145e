package service

import "errors"

// 业务哨兵错误，handler 层据此映射响应码
var (
	ErrNotFound           = errors.New("record not found")
	ErrSlugExists         = errors.New("slug already exists")
	ErrEmailExists        = errors.New("email already registered")
	ErrUsernameExists     = errors.New("username already taken")
	ErrCategoryInUse      = errors.New("category has products or subcategories")
	ErrBrandInUse         = errors.New("brand has products")
	ErrParentInvalid      = errors.New("parent must be a top-level category")
	ErrCategoryMismatch   = errors.New("subcategory does not belong to category")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("password too weak")
	ErrTokenInvalid       = errors.New("token invalid or expired")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrOutOfStock         = errors.New("insufficient stock")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrAffiliateProduct   = errors.New("product is affiliate only")
	ErrOrderNotCancelable = errors.New("order cannot be cancelled")
	ErrStatusInvalid      = errors.New("invalid status transition")
	ErrPaymentFinal       = errors.New("payment already finalized")
	ErrAlreadyWishlisted  = errors.New("product already in wishlist")
	ErrInvalidInput       = errors.New("invalid input")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
)
