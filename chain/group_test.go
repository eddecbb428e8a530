package chain

import (
	"testing"

	"github.com/holiman/uint256"
)

func groupTxns(n int) []*Txn {
	txns := make([]*Txn, n)
	for i := range txns {
		txns[i] = &Txn{
			Type:     TxnPayment,
			Sender:   testAddress(1),
			Receiver: testAddress(2),
			Amount:   uint256.NewInt(uint64(i + 1)),
		}
	}
	return txns
}

func TestAssignGroupStampsAllMembers(t *testing.T) {
	txns := groupTxns(3)
	if err := AssignGroup(txns); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if txns[0].Group == "" {
		t.Fatal("group id not assigned")
	}
	for i, txn := range txns {
		if txn.Group != txns[0].Group {
			t.Errorf("member %d has a different group id", i)
		}
	}
}

func TestAssignGroupPreservesOrder(t *testing.T) {
	txns := groupTxns(4)
	if err := AssignGroup(txns); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	for i, txn := range txns {
		if txn.Amount.Uint64() != uint64(i+1) {
			t.Errorf("member %d out of order", i)
		}
	}
}

func TestAssignGroupSingleTxnGetsNoGroupID(t *testing.T) {
	txns := groupTxns(1)
	if err := AssignGroup(txns); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if txns[0].Group != "" {
		t.Errorf("single transaction got a group id: %s", txns[0].Group)
	}
}

func TestAssignGroupRejectsOversize(t *testing.T) {
	if err := AssignGroup(groupTxns(MaxTxGroupSize + 1)); err == nil {
		t.Error("oversize group accepted")
	}
	if err := AssignGroup(nil); err == nil {
		t.Error("empty group accepted")
	}
}

func TestAssignGroupRejectsAlreadyGrouped(t *testing.T) {
	txns := groupTxns(2)
	txns[1].Group = "already-set"
	if err := AssignGroup(txns); err == nil {
		t.Error("already grouped transaction accepted")
	}
}

func TestGroupIDChangesWithMembership(t *testing.T) {
	a := groupTxns(2)
	b := groupTxns(3)
	if err := AssignGroup(a); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := AssignGroup(b); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if a[0].Group == b[0].Group {
		t.Error("different groups share an id")
	}
}
