package savingsv1

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

const protoFile = "savings/v1/savings.proto"

// File_savings_v1_savings_proto describes savings.v1.SavingsService. It is
// registered in protoregistry.GlobalFiles so server reflection can resolve it.
var File_savings_v1_savings_proto protoreflect.FileDescriptor

func init() {
	service := &descriptorpb.ServiceDescriptorProto{Name: proto.String("SavingsService")}
	for _, m := range SavingsService_ServiceDesc.Methods {
		service.Method = append(service.Method, &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(m.MethodName),
			InputType:  proto.String(".google.protobuf.Struct"),
			OutputType: proto.String(".google.protobuf.Struct"),
		})
	}

	file := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(protoFile),
		Package:    proto.String("savings.v1"),
		Dependency: []string{"google/protobuf/struct.proto"},
		Service:    []*descriptorpb.ServiceDescriptorProto{service},
		Syntax:     proto.String("proto3"),
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/simaogato/savings-backend/internal/adapter/grpc/savingsv1"),
		},
	}

	fd, err := protodesc.NewFile(file, protoregistry.GlobalFiles)
	if err != nil {
		panic("savingsv1: invalid descriptor: " + err.Error())
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic("savingsv1: register descriptor: " + err.Error())
	}
	File_savings_v1_savings_proto = fd
}
