package bank

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Seed loads the development dataset: three customers, five staff principals,
// three accounts and two historical transactions. Passwords are hashed at
// load time so the store never holds plaintext.
func Seed(s *MemoryStore) error {
	type seedUser struct {
		p        Principal
		password string
	}
	users := []seedUser{
		{Principal{
			CustomerID: "MB001", Name: "Nguyen Van An", Email: "nguyenvanan@gmail.com",
			Role: "customer", Status: PrincipalActive,
			EmailVerified: true, SMSVerified: true,
			DailyLimit: 100_000_000, BranchCode: "MB_HN001",
		}, "customer123"},
		{Principal{
			CustomerID: "MB002", Name: "Tran Thi Binh", Email: "tranthibinh@yahoo.com",
			Role: "customer", Status: PrincipalActive,
			EmailVerified: true, SMSVerified: false,
			DailyLimit: 50_000_000, BranchCode: "MB_HN001",
		}, "customer456"},
		{Principal{
			CustomerID: "MB003", Name: "Le Minh Cuong", Email: "leminhcuong@hotmail.com",
			Role: "customer", Status: PrincipalSuspended,
			EmailVerified: true, SMSVerified: true,
			DailyLimit: 20_000_000, BranchCode: "MB_HN002",
		}, "customer789"},
		{Principal{
			CustomerID: "EMP001", Name: "Pham Thi Dung", Email: "phamthidung@mbbank.com",
			Role: "teller", Status: PrincipalActive,
			EmailVerified: true, SMSVerified: true,
			BranchCode: "MB_HN001", Department: "branch_operations", ApprovalLevel: 1,
		}, "teller123"},
		{Principal{
			CustomerID: "MGR001", Name: "Hoang Van Em", Email: "hoangvanem@mbbank.com",
			Role: "manager", Status: PrincipalActive,
			EmailVerified: true, SMSVerified: true,
			BranchCode: "MB_HN001", Department: "branch_management", ApprovalLevel: 3,
		}, "manager123"},
		{Principal{
			CustomerID: "CMP001", Name: "Vu Thi Giang", Email: "vuthigiang@mbbank.com",
			Role: "compliance", Status: PrincipalActive,
			EmailVerified: true, SMSVerified: true,
			Department: "compliance", ApprovalLevel: 4,
		}, "compliance123"},
		{Principal{
			CustomerID: "SEC001", Name: "Dang Minh Hai", Email: "dangminhhai@mbbank.com",
			Role: "security", Status: PrincipalActive,
			EmailVerified: true, SMSVerified: true,
			Department: "security", ApprovalLevel: 4,
		}, "security123"},
		{Principal{
			CustomerID: "AUD001", Name: "Ly Thi Lan", Email: "lythilan@mbbank.com",
			Role: "auditor", Status: PrincipalActive,
			EmailVerified: true, SMSVerified: true,
			Department: "audit", ApprovalLevel: 3, ReadOnly: true,
		}, "auditor123"},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.p.PasswordHash = string(hash)
		s.AddPrincipal(u.p)
	}

	accounts := []Account{
		{AccountNumber: "0123456789", AccountType: "savings", CustomerID: "MB001",
			Balance: 250_000_000, BranchCode: "MB_HN001", OpenedDate: "2023-01-15", Currency: "VND"},
		{AccountNumber: "0987654321", AccountType: "checking", CustomerID: "MB002",
			Balance: 75_000_000, BranchCode: "MB_HN001", OpenedDate: "2023-03-20", Currency: "VND"},
		{AccountNumber: "1122334455", AccountType: "savings", CustomerID: "MB003",
			Balance: 10_000_000, Frozen: true, BranchCode: "MB_HN002", OpenedDate: "2022-12-10", Currency: "VND"},
	}
	for _, a := range accounts {
		if _, err := s.CreateAccount(context.Background(), a); err != nil {
			return err
		}
	}

	s.AppendTransaction(Transaction{
		TransactionID: "TXN001", FromAccount: "0123456789", ToAccount: "0987654321",
		Amount: 5_000_000, Type: TxInternalTransfer, Status: TxCompleted,
		Timestamp: time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC),
		Description: "Chuyen khoan cho ban",
	})
	s.AppendTransaction(Transaction{
		TransactionID: "TXN002", FromAccount: "0987654321", ToAccount: "external_bank_account",
		Amount: 2_000_000, Type: TxExternalTransfer, Status: TxPending,
		Timestamp: time.Date(2024, 1, 20, 14, 15, 0, 0, time.UTC),
		Description: "Thanh toan hoa don",
	})
	return nil
}
